package jobsrv

import (
	"context"
	"errors"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/Abraxas-365/jobboard/recruitment/application"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/go-playground/validator/v10"
)

// JobService provides business operations for jobs
type JobService struct {
	jobRepo  job.Repository
	cache    job.Cache
	validate *validator.Validate
}

// NewJobService creates a new instance of the job service. cache may be
// nil, in which case every read goes to the repository.
func NewJobService(
	jobRepo job.Repository,
	cache job.Cache,
) *JobService {
	return &JobService{
		jobRepo:  jobRepo,
		cache:    cache,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ============================================================================
// Reads
// ============================================================================

// ListJobs lists every job, or only the matching ones when criteria is set
func (s *JobService) ListJobs(ctx context.Context, username kernel.Username, criteria job.FilterCriteria) ([]job.JobListing, error) {
	var (
		listings []job.JobListing
		err      error
	)
	if criteria.IsEmpty() {
		listings, err = s.jobRepo.ListForUser(ctx, username)
	} else {
		listings, err = s.jobRepo.Search(ctx, criteria, username)
	}
	if err != nil {
		return nil, errx.Wrap(err, "failed to list jobs", errx.TypeInternal)
	}
	return listings, nil
}

// GetJobsPage returns one page of jobs ordered by id
func (s *JobService) GetJobsPage(ctx context.Context, username kernel.Username, pagination kernel.PaginationOptions) (*job.PaginatedJobsResponse, error) {
	pagination = pagination.Normalize()

	page, err := s.jobRepo.Page(ctx, pagination.Offset(), pagination.PageSize, username)
	if err != nil {
		return nil, errx.Wrap(err, "failed to page jobs", errx.TypeInternal)
	}

	return kernel.NewPaginated(page.Items, pagination, page.Total), nil
}

// GetJob retrieves a job with its company, consulting the cache first.
// The cache generation is read before the repository so a concurrent
// update or delete makes the fill below a no-op.
func (s *JobService) GetJob(ctx context.Context, jobID kernel.JobID) (*job.JobDetail, error) {
	fill := false
	var gen int64

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, jobID)
		switch {
		case err != nil:
			logx.Warnf("job cache read failed for %s: %v", jobID, err)
		case ok:
			logx.Debugf("job %s served from cache", jobID)
			return cached, nil
		default:
			gen, err = s.cache.Generation(ctx, jobID)
			if err != nil {
				logx.Warnf("job cache generation read failed for %s: %v", jobID, err)
			} else {
				fill = true
			}
		}
	}

	detail, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get job", errx.TypeInternal)
	}

	if fill {
		if err := s.cache.Set(ctx, detail, gen); err != nil {
			logx.Warnf("job cache write failed for %s: %v", jobID, err)
		}
	}
	return detail, nil
}

// GetJobStats retrieves the application count of a job
func (s *JobService) GetJobStats(ctx context.Context, jobID kernel.JobID) (*job.JobStatsResponse, error) {
	detail, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	total, err := s.jobRepo.CountApplications(ctx, jobID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to count applications", errx.TypeInternal)
	}

	return &job.JobStatsResponse{
		JobID:             detail.ID,
		Title:             detail.Title,
		TotalApplications: total,
	}, nil
}

// JobExists reports whether a job with the given id is stored
func (s *JobService) JobExists(ctx context.Context, jobID kernel.JobID) (bool, error) {
	found, err := s.jobRepo.Exists(ctx, jobID)
	if err != nil {
		return false, errx.Wrap(err, "failed to check job existence", errx.TypeInternal)
	}
	return found, nil
}

// ============================================================================
// Writes
// ============================================================================

// CreateJob creates a new job posting
func (s *JobService) CreateJob(ctx context.Context, req job.CreateJobRequest) (*job.Job, error) {
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}
	if req.Equity != nil && !job.ValidEquity(*req.Equity) {
		return nil, job.ErrInvalidEquity().WithDetail("equity", req.Equity.String())
	}

	created, err := s.jobRepo.Create(ctx, req)
	if err != nil {
		return nil, errx.Wrap(err, "failed to create job", errx.TypeInternal)
	}

	logx.Infof("job %s created for company %s", created.ID, created.CompanyHandle)
	return created, nil
}

// UpdateJob applies a partial update. An empty request is rejected by the
// repository before any statement runs.
func (s *JobService) UpdateJob(ctx context.Context, jobID kernel.JobID, req job.UpdateJobRequest) (*job.Job, error) {
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}
	if req.Equity != nil && !job.ValidEquity(*req.Equity) {
		return nil, job.ErrInvalidEquity().WithDetail("equity", req.Equity.String())
	}

	updated, err := s.jobRepo.Update(ctx, jobID, req)
	if err != nil {
		return nil, errx.Wrap(err, "failed to update job", errx.TypeInternal)
	}

	s.invalidate(ctx, jobID)
	return updated, nil
}

// DeleteJob removes a job together with its applications
func (s *JobService) DeleteJob(ctx context.Context, jobID kernel.JobID) error {
	if err := s.jobRepo.Delete(ctx, jobID); err != nil {
		return errx.Wrap(err, "failed to delete job", errx.TypeInternal)
	}

	s.invalidate(ctx, jobID)
	logx.Infof("job %s deleted", jobID)
	return nil
}

// ============================================================================
// Applications
// ============================================================================

// ApplyToJob records the user's application with the given state
func (s *JobService) ApplyToJob(ctx context.Context, jobID kernel.JobID, username kernel.Username, req application.ApplyRequest) (*application.Application, error) {
	if username.IsEmpty() {
		return nil, application.ErrUsernameRequired()
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, application.ErrInvalidState().WithCause(err)
	}

	applied, err := s.jobRepo.Apply(ctx, jobID, username, req.State)
	if err != nil {
		return nil, errx.Wrap(err, "failed to apply to job", errx.TypeInternal)
	}
	return applied, nil
}

// WithdrawApplication removes the user's application
func (s *JobService) WithdrawApplication(ctx context.Context, jobID kernel.JobID, username kernel.Username) error {
	if username.IsEmpty() {
		return application.ErrUsernameRequired()
	}

	if err := s.jobRepo.Withdraw(ctx, jobID, username); err != nil {
		return errx.Wrap(err, "failed to withdraw application", errx.TypeInternal)
	}
	return nil
}

// ============================================================================
// Helpers
// ============================================================================

func (s *JobService) invalidate(ctx context.Context, jobID kernel.JobID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, jobID); err != nil {
		logx.Warnf("job cache invalidation failed for %s: %v", jobID, err)
	}
}

// validateStruct converts validator failures into a VALIDATION_FAILED
// error with one detail per offending field
func (s *JobService) validateStruct(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errx.Wrap(err, "failed to validate request", errx.TypeValidation)
	}

	out := job.ErrValidationFailed()
	for _, fe := range fieldErrs {
		out = out.WithDetail(fe.Field(), fe.Tag())
	}
	return out
}
