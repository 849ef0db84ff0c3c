package job

import (
	"context"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/application"
)

type Repository interface {
	// ListForUser retrieves every job with the user's application state
	ListForUser(ctx context.Context, username kernel.Username) ([]JobListing, error)

	// Search retrieves the jobs matching criteria with the user's application state
	Search(ctx context.Context, criteria FilterCriteria, username kernel.Username) ([]JobListing, error)

	// Page retrieves a window of jobs ordered by id plus the total job count
	Page(ctx context.Context, offset, count int, username kernel.Username) (*JobPage, error)

	// GetByID retrieves a job with its company
	GetByID(ctx context.Context, id kernel.JobID) (*JobDetail, error)

	// Create inserts a job and returns it with its generated id
	Create(ctx context.Context, req CreateJobRequest) (*Job, error)

	// Update applies a partial update and returns the updated job
	Update(ctx context.Context, id kernel.JobID, req UpdateJobRequest) (*Job, error)

	// Delete removes a job and its applications
	Delete(ctx context.Context, id kernel.JobID) error

	// Apply records an application of username to the job
	Apply(ctx context.Context, id kernel.JobID, username kernel.Username, state application.State) (*application.Application, error)

	// Withdraw removes the application of username to the job
	Withdraw(ctx context.Context, id kernel.JobID, username kernel.Username) error

	// Exists checks if a job exists by ID
	Exists(ctx context.Context, id kernel.JobID) (bool, error)

	// CountApplications counts applications for a specific job
	CountApplications(ctx context.Context, id kernel.JobID) (int64, error)
}

// Cache stores job details between reads. Every Invalidate bumps the
// job's generation; Set only stores a detail read under the generation it
// is given, so a read that races a write cannot repopulate stale data.
type Cache interface {
	Get(ctx context.Context, id kernel.JobID) (*JobDetail, bool, error)
	Generation(ctx context.Context, id kernel.JobID) (int64, error)
	Set(ctx context.Context, detail *JobDetail, generation int64) error
	Invalidate(ctx context.Context, id kernel.JobID) error
}
