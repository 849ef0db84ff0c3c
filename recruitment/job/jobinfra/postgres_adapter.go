package jobinfra

import (
	"context"
	"errors"

	"github.com/Abraxas-365/jobboard/pkg/dbx"
	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/pkg/sqlbuild"
	"github.com/Abraxas-365/jobboard/recruitment/application"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// PostgresJobRepository implements job.Repository using PostgreSQL
type PostgresJobRepository struct {
	db dbx.Gateway
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db dbx.Gateway) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

// ============================================================================
// Listings
// ============================================================================

// ListForUser retrieves every job with the user's application state
func (r *PostgresJobRepository) ListForUser(ctx context.Context, username kernel.Username) ([]job.JobListing, error) {
	return r.Search(ctx, job.FilterCriteria{}, username)
}

// Search retrieves the jobs matching criteria
func (r *PostgresJobRepository) Search(ctx context.Context, criteria job.FilterCriteria, username kernel.Username) ([]job.JobListing, error) {
	stmt := buildFilterQuery(criteria, username)

	rows, err := r.db.Query(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, internal(err, "failed to search jobs")
	}

	listings, err := toListings(rows)
	if err != nil {
		return nil, internal(err, "failed to map jobs")
	}
	return listings, nil
}

// Page retrieves count jobs starting at offset, plus the total number of
// jobs regardless of the window
func (r *PostgresJobRepository) Page(ctx context.Context, offset, count int, username kernel.Username) (*job.JobPage, error) {
	if offset < 0 || count < 0 {
		return nil, job.ErrInvalidPagination().
			WithDetail("offset", offset).
			WithDetail("count", count)
	}

	stmt := buildPageQuery(offset, count, username)
	rows, err := r.db.Query(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, internal(err, "failed to page jobs")
	}

	items, err := toListings(rows)
	if err != nil {
		return nil, internal(err, "failed to map jobs")
	}

	totalRows, err := r.db.Query(ctx, `SELECT COUNT(*) AS total FROM jobs`)
	if err != nil {
		return nil, internal(err, "failed to count jobs")
	}
	total, err := scalarInt64(totalRows, "total")
	if err != nil {
		return nil, internal(err, "failed to count jobs")
	}

	return &job.JobPage{
		Items: items,
		Total: int(total),
	}, nil
}

// ============================================================================
// Single job
// ============================================================================

// GetByID retrieves a job with its company
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.JobDetail, error) {
	query := `
		SELECT
			j.id, j.title, j.salary, j.equity, j.company_handle,
			c.handle, c.name, c.num_employees, c.description, c.logo_url
		FROM jobs j
		LEFT JOIN companies c ON c.handle = j.company_handle
		WHERE j.id = $1
	`

	rows, err := r.db.Query(ctx, query, id.Int64())
	if err != nil {
		return nil, internal(err, "failed to get job")
	}
	if len(rows) == 0 {
		return nil, job.ErrJobNotFound().WithDetail("job_id", id.Int64())
	}

	detail, err := toDetail(rows[0])
	if err != nil {
		return nil, internal(err, "failed to map job")
	}
	return detail, nil
}

// Create inserts a job. The id is generated by the database.
func (r *PostgresJobRepository) Create(ctx context.Context, req job.CreateJobRequest) (*job.Job, error) {
	query := `
		INSERT INTO jobs (title, salary, equity, company_handle)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, salary, equity, company_handle
	`

	rows, err := r.db.Query(ctx, query,
		req.Title.String(),
		nullableInt64(req.Salary),
		nullableDecimal(req.Equity),
		req.CompanyHandle.String(),
	)
	if err != nil {
		return nil, translateWrite(err, "failed to create job").
			WithDetail("company_handle", req.CompanyHandle.String())
	}
	if len(rows) == 0 {
		return nil, errx.New("insert returned no row", errx.TypeInternal)
	}

	created, err := toJob(rows[0])
	if err != nil {
		return nil, internal(err, "failed to map job")
	}
	return created, nil
}

// Update writes only the fields set on req
func (r *PostgresJobRepository) Update(ctx context.Context, id kernel.JobID, req job.UpdateJobRequest) (*job.Job, error) {
	stmt, err := sqlbuild.Update("jobs", updateFields(req), "id", id.Int64())
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, translateWrite(err, "failed to update job")
	}
	if len(rows) == 0 {
		return nil, job.ErrJobNotFound().WithDetail("job_id", id.Int64())
	}

	updated, err := toJob(rows[0])
	if err != nil {
		return nil, internal(err, "failed to map job")
	}
	return updated, nil
}

// Delete removes the job and every application to it in one transaction
func (r *PostgresJobRepository) Delete(ctx context.Context, id kernel.JobID) error {
	err := r.db.WithTx(ctx, func(tx dbx.Gateway) error {
		if _, err := tx.Query(ctx, `DELETE FROM applications WHERE job_id = $1`, id.Int64()); err != nil {
			return err
		}

		rows, err := tx.Query(ctx, `DELETE FROM jobs WHERE id = $1 RETURNING id`, id.Int64())
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return job.ErrJobNotFound().WithDetail("job_id", id.Int64())
		}
		return nil
	})
	if err != nil {
		return internal(err, "failed to delete job")
	}
	return nil
}

// Exists checks if a job exists by ID
func (r *PostgresJobRepository) Exists(ctx context.Context, id kernel.JobID) (bool, error) {
	rows, err := r.db.Query(ctx, `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1) AS found`, id.Int64())
	if err != nil {
		return false, internal(err, "failed to check job existence")
	}
	if len(rows) == 0 {
		return false, nil
	}

	found, err := cast.ToBoolE(normalize(rows[0]["found"]))
	if err != nil {
		return false, internal(err, "failed to check job existence")
	}
	return found, nil
}

// ============================================================================
// Applications
// ============================================================================

// Apply records username's application. The job row is share-locked so a
// concurrent delete cannot slip between the existence check and the insert.
func (r *PostgresJobRepository) Apply(ctx context.Context, id kernel.JobID, username kernel.Username, state application.State) (*application.Application, error) {
	var applied *application.Application

	err := r.db.WithTx(ctx, func(tx dbx.Gateway) error {
		rows, err := tx.Query(ctx, `SELECT id FROM jobs WHERE id = $1 FOR SHARE`, id.Int64())
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return job.ErrJobNotFound().WithDetail("job_id", id.Int64())
		}

		rows, err = tx.Query(ctx, `
			INSERT INTO applications (job_id, username, state)
			VALUES ($1, $2, $3)
			RETURNING job_id, username, state
		`, id.Int64(), username.String(), state.String())
		if err != nil {
			switch {
			case dbx.IsUniqueViolation(err):
				return application.ErrApplicationAlreadyExists().
					WithDetail("job_id", id.Int64()).
					WithDetail("username", username.String())
			case dbx.IsForeignKeyViolation(err):
				return job.ErrJobNotFound().WithDetail("job_id", id.Int64())
			}
			return err
		}
		if len(rows) == 0 {
			return errx.New("insert returned no row", errx.TypeInternal)
		}

		applied, err = toApplication(rows[0])
		return err
	})
	if err != nil {
		return nil, internal(err, "failed to apply to job")
	}
	return applied, nil
}

// Withdraw removes username's application
func (r *PostgresJobRepository) Withdraw(ctx context.Context, id kernel.JobID, username kernel.Username) error {
	rows, err := r.db.Query(ctx,
		`DELETE FROM applications WHERE job_id = $1 AND username = $2 RETURNING job_id`,
		id.Int64(), username.String(),
	)
	if err != nil {
		return internal(err, "failed to withdraw application")
	}
	if len(rows) == 0 {
		return application.ErrApplicationNotFound().
			WithDetail("job_id", id.Int64()).
			WithDetail("username", username.String())
	}
	return nil
}

// CountApplications counts applications for a specific job
func (r *PostgresJobRepository) CountApplications(ctx context.Context, id kernel.JobID) (int64, error) {
	rows, err := r.db.Query(ctx, `SELECT COUNT(*) AS total FROM applications WHERE job_id = $1`, id.Int64())
	if err != nil {
		return 0, internal(err, "failed to count applications")
	}
	count, err := scalarInt64(rows, "total")
	if err != nil {
		return 0, internal(err, "failed to count applications")
	}
	return count, nil
}

// ============================================================================
// Helpers
// ============================================================================

// internal keeps typed errors as they are and wraps everything else
func internal(err error, msg string) error {
	var typed *errx.Error
	if errors.As(err, &typed) {
		return err
	}
	return errx.Wrap(err, msg, errx.TypeInternal)
}

// translateWrite maps constraint violations and out-of-range values raised
// by INSERT/UPDATE on jobs
func translateWrite(err error, msg string) *errx.Error {
	if dbx.IsOutOfRange(err) {
		return job.ErrValidationFailed().
			WithDetail("reason", "value out of range").
			WithCause(err)
	}

	v, ok := dbx.AsViolation(err)
	if !ok {
		return errx.Wrap(err, msg, errx.TypeInternal)
	}

	if v.Code == dbx.CodeForeignKeyViolation {
		return job.ErrCompanyReference().WithCause(err)
	}
	return job.ErrConstraintViolated().
		WithDetail("constraint", v.Constraint).
		WithDetail("reason", v.Message()).
		WithCause(err)
}

func scalarInt64(rows []dbx.Row, col string) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	return int64Col(rows[0], col)
}

func nullableInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableDecimal(v *decimal.Decimal) any {
	if v == nil {
		return nil
	}
	return v.String()
}
