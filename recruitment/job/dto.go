package job

import (
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/shopspring/decimal"
)

// CreateJobRequest - DTO for creating a new job
type CreateJobRequest struct {
	Title         kernel.JobTitle      `json:"title" validate:"required,max=200"`
	Salary        *int64               `json:"salary,omitempty" validate:"omitempty,min=0"`
	Equity        *decimal.Decimal     `json:"equity,omitempty"`
	CompanyHandle kernel.CompanyHandle `json:"company_handle" validate:"required,max=25"`
}

// UpdateJobRequest - DTO for a partial update. Only non-nil fields are
// written; id and company_handle cannot be changed.
type UpdateJobRequest struct {
	Title  *kernel.JobTitle `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Salary *int64           `json:"salary,omitempty" validate:"omitempty,min=0"`
	Equity *decimal.Decimal `json:"equity,omitempty"`
}

// IsEmpty reports whether the request sets no field
func (r UpdateJobRequest) IsEmpty() bool {
	return r.Title == nil && r.Salary == nil && r.Equity == nil
}

// Response type alias for paginated listings
type PaginatedJobsResponse = kernel.Paginated[JobListing]

// JobStatsResponse - Statistics for a job
type JobStatsResponse struct {
	JobID             kernel.JobID    `json:"job_id"`
	Title             kernel.JobTitle `json:"title"`
	TotalApplications int64           `json:"total_applications"`
}
