package jobinfra

import (
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/pkg/sqlbuild"
	"github.com/Abraxas-365/jobboard/recruitment/job"
)

// listingSelect joins each job with its company name and the acting
// user's application. The username is always bound to $1.
const listingSelect = `
SELECT j.id, j.title, j.salary, j.equity, j.company_handle,
       c.name AS company_name, a.state
FROM jobs j
LEFT JOIN companies c ON c.handle = j.company_handle
LEFT OUTER JOIN applications a ON a.job_id = j.id AND a.username = $1`

func listingQuery(username kernel.Username) sqlbuild.SelectBuilder {
	return sqlbuild.Select(listingSelect, username.String())
}

// buildFilterQuery appends one predicate per present criterion, in the
// order salary, equity, title.
func buildFilterQuery(criteria job.FilterCriteria, username kernel.Username) sqlbuild.Statement {
	q := listingQuery(username)

	if criteria.MinSalary != nil {
		q = q.Where("j.salary >= ?", *criteria.MinSalary)
	}
	if criteria.MinEquity != nil {
		q = q.Where("j.equity >= ?", criteria.MinEquity.String())
	}
	if criteria.Title != "" {
		q = q.Where("j.title ILIKE ?", "%"+criteria.Title+"%")
	}

	return q.OrderBy("j.id").Build()
}

// buildPageQuery selects a window of listings ordered by id
func buildPageQuery(offset, count int, username kernel.Username) sqlbuild.Statement {
	return listingQuery(username).
		OrderBy("j.id").
		Limit(count).
		Offset(offset).
		Build()
}

// updateFields is the column whitelist for partial job updates
func updateFields(req job.UpdateJobRequest) sqlbuild.Fields {
	var fields sqlbuild.Fields
	if req.Title != nil {
		fields = fields.Set("title", req.Title.String())
	}
	if req.Salary != nil {
		fields = fields.Set("salary", *req.Salary)
	}
	if req.Equity != nil {
		fields = fields.Set("equity", req.Equity.String())
	}
	return fields
}
