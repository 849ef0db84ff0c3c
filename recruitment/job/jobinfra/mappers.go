package jobinfra

import (
	"fmt"

	"github.com/Abraxas-365/jobboard/pkg/dbx"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/application"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// ============================================================================
// Row -> entity mapping
// ============================================================================

// lib/pq hands NUMERIC back as []byte
func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

func int64Col(row dbx.Row, col string) (int64, error) {
	n, err := cast.ToInt64E(normalize(row[col]))
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", col, err)
	}
	return n, nil
}

func stringCol(row dbx.Row, col string) (string, error) {
	s, err := cast.ToStringE(normalize(row[col]))
	if err != nil {
		return "", fmt.Errorf("column %s: %w", col, err)
	}
	return s, nil
}

func optionalInt64Col(row dbx.Row, col string) (*int64, error) {
	if row[col] == nil {
		return nil, nil
	}
	n, err := int64Col(row, col)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func optionalStringCol(row dbx.Row, col string) (*string, error) {
	if row[col] == nil {
		return nil, nil
	}
	s, err := stringCol(row, col)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func optionalDecimalCol(row dbx.Row, col string) (*decimal.Decimal, error) {
	var (
		d   decimal.Decimal
		err error
	)
	switch v := normalize(row[col]).(type) {
	case nil:
		return nil, nil
	case string:
		d, err = decimal.NewFromString(v)
	case float64:
		d = decimal.NewFromFloat(v)
	case int64:
		d = decimal.NewFromInt(v)
	default:
		err = fmt.Errorf("unexpected type %T", v)
	}
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", col, err)
	}
	return &d, nil
}

func toJob(row dbx.Row) (*job.Job, error) {
	id, err := int64Col(row, "id")
	if err != nil {
		return nil, err
	}
	title, err := stringCol(row, "title")
	if err != nil {
		return nil, err
	}
	salary, err := optionalInt64Col(row, "salary")
	if err != nil {
		return nil, err
	}
	equity, err := optionalDecimalCol(row, "equity")
	if err != nil {
		return nil, err
	}
	handle, err := stringCol(row, "company_handle")
	if err != nil {
		return nil, err
	}

	return &job.Job{
		ID:            kernel.NewJobID(id),
		Title:         kernel.JobTitle(title),
		Salary:        salary,
		Equity:        equity,
		CompanyHandle: kernel.NewCompanyHandle(handle),
	}, nil
}

func toListing(row dbx.Row) (*job.JobListing, error) {
	j, err := toJob(row)
	if err != nil {
		return nil, err
	}
	companyName, err := optionalStringCol(row, "company_name")
	if err != nil {
		return nil, err
	}
	rawState, err := optionalStringCol(row, "state")
	if err != nil {
		return nil, err
	}

	var state *application.State
	if rawState != nil {
		s := application.State(*rawState)
		state = &s
	}

	return &job.JobListing{
		Job:         *j,
		CompanyName: companyName,
		State:       state,
	}, nil
}

func toListings(rows []dbx.Row) ([]job.JobListing, error) {
	listings := make([]job.JobListing, 0, len(rows))
	for _, row := range rows {
		l, err := toListing(row)
		if err != nil {
			return nil, err
		}
		listings = append(listings, *l)
	}
	return listings, nil
}

func toDetail(row dbx.Row) (*job.JobDetail, error) {
	j, err := toJob(row)
	if err != nil {
		return nil, err
	}

	detail := &job.JobDetail{Job: *j}
	if row["handle"] == nil {
		return detail, nil
	}

	name, err := stringCol(row, "name")
	if err != nil {
		return nil, err
	}
	employees, err := optionalInt64Col(row, "num_employees")
	if err != nil {
		return nil, err
	}
	description, err := optionalStringCol(row, "description")
	if err != nil {
		return nil, err
	}
	logo, err := optionalStringCol(row, "logo_url")
	if err != nil {
		return nil, err
	}

	detail.Company = job.Company{
		Handle:       j.CompanyHandle,
		Name:         name,
		NumEmployees: employees,
		LogoURL:      logo,
	}
	if description != nil {
		detail.Company.Description = *description
	}
	return detail, nil
}

func toApplication(row dbx.Row) (*application.Application, error) {
	jobID, err := int64Col(row, "job_id")
	if err != nil {
		return nil, err
	}
	username, err := stringCol(row, "username")
	if err != nil {
		return nil, err
	}
	state, err := stringCol(row, "state")
	if err != nil {
		return nil, err
	}

	return &application.Application{
		JobID:    kernel.NewJobID(jobID),
		Username: kernel.NewUsername(username),
		State:    application.State(state),
	}, nil
}
