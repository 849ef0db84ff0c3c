package job

import (
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/application"
	"github.com/shopspring/decimal"
)

var maxEquity = decimal.NewFromInt(1)

type Job struct {
	ID            kernel.JobID         `db:"id" json:"id"`
	Title         kernel.JobTitle      `db:"title" json:"title"`
	Salary        *int64               `db:"salary" json:"salary"`
	Equity        *decimal.Decimal     `db:"equity" json:"equity"`
	CompanyHandle kernel.CompanyHandle `db:"company_handle" json:"company_handle"`
}

// Company is the read-only projection embedded in job details
type Company struct {
	Handle       kernel.CompanyHandle `db:"handle" json:"handle"`
	Name         string               `db:"name" json:"name"`
	NumEmployees *int64               `db:"num_employees" json:"num_employees"`
	Description  string               `db:"description" json:"description"`
	LogoURL      *string              `db:"logo_url" json:"logo_url"`
}

// JobDetail is a job together with its company
type JobDetail struct {
	Job
	Company Company `json:"company"`
}

// JobListing is one row of a listing, carrying the acting user's
// application state. State is nil when the user has not applied.
type JobListing struct {
	Job
	CompanyName *string            `json:"company_name"`
	State       *application.State `json:"state"`
}

// JobPage is a window of listings plus the total number of jobs
type JobPage struct {
	Items []JobListing
	Total int
}

// FilterCriteria narrows a listing. Nil thresholds and an empty title are
// ignored.
type FilterCriteria struct {
	MinSalary *int64           `json:"min_salary,omitempty"`
	MinEquity *decimal.Decimal `json:"min_equity,omitempty"`
	Title     string           `json:"title,omitempty"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsEmpty reports whether no criterion is set
func (c FilterCriteria) IsEmpty() bool {
	return c.MinSalary == nil && c.MinEquity == nil && c.Title == ""
}

// HasApplied reports whether the acting user has an application on the job
func (l *JobListing) HasApplied() bool {
	return l.State != nil
}

// ValidEquity reports whether e is a fraction in [0, 1]
func ValidEquity(e decimal.Decimal) bool {
	return !e.IsNegative() && e.LessThanOrEqual(maxEquity)
}
