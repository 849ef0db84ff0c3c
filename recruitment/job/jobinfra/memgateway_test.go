package jobinfra

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Abraxas-365/jobboard/pkg/dbx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// memGateway is a dbx.Gateway over in-memory tables. It understands the
// statements issued by PostgresJobRepository and returns values shaped the
// way lib/pq returns them.

type memJob struct {
	id     int64
	title  string
	salary *int64
	equity *decimal.Decimal
	handle string
}

func (j memJob) row() dbx.Row {
	row := dbx.Row{
		"id":             j.id,
		"title":          j.title,
		"salary":         nil,
		"equity":         nil,
		"company_handle": j.handle,
	}
	if j.salary != nil {
		row["salary"] = *j.salary
	}
	if j.equity != nil {
		row["equity"] = []byte(j.equity.String())
	}
	return row
}

type memCompany struct {
	handle    string
	name      string
	employees *int64
}

type appKey struct {
	jobID    int64
	username string
}

type memDB struct {
	companies map[string]memCompany
	jobs      []memJob
	apps      map[appKey]string
	nextID    int64
}

func (d *memDB) clone() *memDB {
	c := &memDB{
		companies: make(map[string]memCompany, len(d.companies)),
		jobs:      append([]memJob(nil), d.jobs...),
		apps:      make(map[appKey]string, len(d.apps)),
		nextID:    d.nextID,
	}
	for k, v := range d.companies {
		c.companies[k] = v
	}
	for k, v := range d.apps {
		c.apps[k] = v
	}
	return c
}

func (d *memDB) find(id int64) int {
	for i, j := range d.jobs {
		if j.id == id {
			return i
		}
	}
	return -1
}

type memGateway struct {
	db       *memDB
	executed []string
	failOn   string
	failErr  error
}

func newMemGateway() *memGateway {
	return &memGateway{db: &memDB{
		companies: map[string]memCompany{},
		apps:      map[appKey]string{},
		nextID:    1,
	}}
}

func (g *memGateway) addCompany(handle, name string) {
	g.db.companies[handle] = memCompany{handle: handle, name: name}
}

func (g *memGateway) addJob(title string, salary *int64, equity string, handle string) int64 {
	j := memJob{id: g.db.nextID, title: title, salary: salary, handle: handle}
	if equity != "" {
		d := decimal.RequireFromString(equity)
		j.equity = &d
	}
	g.db.nextID++
	g.db.jobs = append(g.db.jobs, j)
	return j.id
}

func (g *memGateway) addApp(jobID int64, username, state string) {
	g.db.apps[appKey{jobID, username}] = state
}

func (g *memGateway) WithTx(ctx context.Context, fn func(tx dbx.Gateway) error) error {
	snapshot := g.db.clone()
	if err := fn(g); err != nil {
		g.db = snapshot
		return err
	}
	return nil
}

var (
	salaryPred  = regexp.MustCompile(`j\.salary >= \$(\d+)`)
	equityPred  = regexp.MustCompile(`j\.equity >= \$(\d+)`)
	titlePred   = regexp.MustCompile(`j\.title ILIKE \$(\d+)`)
	limitOffset = regexp.MustCompile(`LIMIT \$(\d+) OFFSET \$(\d+)`)
	setColumn   = regexp.MustCompile(`(\w+) = \$(\d+)`)
	whereID     = regexp.MustCompile(`WHERE id = \$(\d+)`)
)

func argAt(args []any, n string) any {
	i, _ := strconv.Atoi(n)
	return args[i-1]
}

func (g *memGateway) Query(ctx context.Context, query string, args ...any) ([]dbx.Row, error) {
	sql := strings.Join(strings.Fields(query), " ")
	g.executed = append(g.executed, sql)

	if g.failOn != "" && strings.Contains(sql, g.failOn) {
		return nil, g.failErr
	}

	switch {
	case strings.HasPrefix(sql, "SELECT j.id, j.title, j.salary, j.equity, j.company_handle, c.name AS company_name"):
		return g.listing(sql, args), nil
	case strings.HasPrefix(sql, "SELECT j.id, j.title, j.salary, j.equity, j.company_handle, c.handle"):
		return g.detail(args[0].(int64)), nil
	case sql == "SELECT COUNT(*) AS total FROM jobs":
		return []dbx.Row{{"total": int64(len(g.db.jobs))}}, nil
	case strings.HasPrefix(sql, "SELECT COUNT(*) AS total FROM applications"):
		var n int64
		for k := range g.db.apps {
			if k.jobID == args[0].(int64) {
				n++
			}
		}
		return []dbx.Row{{"total": n}}, nil
	case strings.HasPrefix(sql, "SELECT EXISTS"):
		return []dbx.Row{{"found": g.db.find(args[0].(int64)) >= 0}}, nil
	case strings.HasPrefix(sql, "SELECT id FROM jobs WHERE id = $1 FOR SHARE"):
		if g.db.find(args[0].(int64)) < 0 {
			return []dbx.Row{}, nil
		}
		return []dbx.Row{{"id": args[0]}}, nil
	case strings.HasPrefix(sql, "INSERT INTO jobs"):
		return g.insertJob(args)
	case strings.HasPrefix(sql, "UPDATE jobs SET"):
		return g.updateJob(sql, args)
	case strings.HasPrefix(sql, "DELETE FROM jobs"):
		i := g.db.find(args[0].(int64))
		if i < 0 {
			return []dbx.Row{}, nil
		}
		for k := range g.db.apps {
			if k.jobID == args[0].(int64) {
				return nil, &pq.Error{Code: "23503", Table: "applications"}
			}
		}
		g.db.jobs = append(g.db.jobs[:i], g.db.jobs[i+1:]...)
		return []dbx.Row{{"id": args[0]}}, nil
	case strings.HasPrefix(sql, "INSERT INTO applications"):
		key := appKey{args[0].(int64), args[1].(string)}
		if g.db.find(key.jobID) < 0 {
			return nil, &pq.Error{Code: "23503", Table: "applications"}
		}
		if _, ok := g.db.apps[key]; ok {
			return nil, &pq.Error{Code: "23505", Table: "applications", Constraint: "applications_pkey"}
		}
		g.db.apps[key] = args[2].(string)
		return []dbx.Row{{"job_id": key.jobID, "username": key.username, "state": args[2]}}, nil
	case strings.HasPrefix(sql, "DELETE FROM applications WHERE job_id = $1 AND username = $2"):
		key := appKey{args[0].(int64), args[1].(string)}
		if _, ok := g.db.apps[key]; !ok {
			return []dbx.Row{}, nil
		}
		delete(g.db.apps, key)
		return []dbx.Row{{"job_id": key.jobID}}, nil
	case strings.HasPrefix(sql, "DELETE FROM applications WHERE job_id = $1"):
		for k := range g.db.apps {
			if k.jobID == args[0].(int64) {
				delete(g.db.apps, k)
			}
		}
		return []dbx.Row{}, nil
	}

	return nil, fmt.Errorf("unexpected statement: %s", sql)
}

func (g *memGateway) listing(sql string, args []any) []dbx.Row {
	username := args[0].(string)
	rows := make([]dbx.Row, 0)

	jobs := append([]memJob(nil), g.db.jobs...)
	sort.Slice(jobs, func(a, b int) bool { return jobs[a].id < jobs[b].id })

	for _, j := range jobs {
		if m := salaryPred.FindStringSubmatch(sql); m != nil {
			if j.salary == nil || *j.salary < argAt(args, m[1]).(int64) {
				continue
			}
		}
		if m := equityPred.FindStringSubmatch(sql); m != nil {
			threshold := decimal.RequireFromString(argAt(args, m[1]).(string))
			if j.equity == nil || j.equity.LessThan(threshold) {
				continue
			}
		}
		if m := titlePred.FindStringSubmatch(sql); m != nil {
			term := strings.Trim(argAt(args, m[1]).(string), "%")
			if !strings.Contains(strings.ToLower(j.title), strings.ToLower(term)) {
				continue
			}
		}

		row := j.row()
		row["company_name"] = nil
		if c, ok := g.db.companies[j.handle]; ok {
			row["company_name"] = c.name
		}
		row["state"] = nil
		if state, ok := g.db.apps[appKey{j.id, username}]; ok {
			row["state"] = state
		}
		rows = append(rows, row)
	}

	if m := limitOffset.FindStringSubmatch(sql); m != nil {
		limit := argAt(args, m[1]).(int)
		offset := argAt(args, m[2]).(int)
		if offset >= len(rows) {
			return []dbx.Row{}
		}
		end := offset + limit
		if end > len(rows) {
			end = len(rows)
		}
		rows = rows[offset:end]
	}
	return rows
}

func (g *memGateway) detail(id int64) []dbx.Row {
	i := g.db.find(id)
	if i < 0 {
		return []dbx.Row{}
	}
	j := g.db.jobs[i]
	row := j.row()
	for _, col := range []string{"handle", "name", "num_employees", "description", "logo_url"} {
		row[col] = nil
	}
	if c, ok := g.db.companies[j.handle]; ok {
		row["handle"] = c.handle
		row["name"] = c.name
		row["description"] = "About " + c.name
		if c.employees != nil {
			row["num_employees"] = *c.employees
		}
	}
	return []dbx.Row{row}
}

func checkEquity(v any) (*decimal.Decimal, error) {
	if v == nil {
		return nil, nil
	}
	d := decimal.RequireFromString(v.(string))
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(1)) {
		return nil, &pq.Error{Code: "23514", Table: "jobs", Column: "equity", Constraint: "jobs_equity_check"}
	}
	return &d, nil
}

func (g *memGateway) insertJob(args []any) ([]dbx.Row, error) {
	handle := args[3].(string)
	if _, ok := g.db.companies[handle]; !ok {
		return nil, &pq.Error{
			Code:       "23503",
			Table:      "jobs",
			Constraint: "jobs_company_handle_fkey",
			Detail:     fmt.Sprintf("Key (company_handle)=(%s) is not present in table \"companies\".", handle),
		}
	}
	equity, err := checkEquity(args[2])
	if err != nil {
		return nil, err
	}

	j := memJob{id: g.db.nextID, title: args[0].(string), equity: equity, handle: handle}
	if args[1] != nil {
		s := args[1].(int64)
		j.salary = &s
	}
	g.db.nextID++
	g.db.jobs = append(g.db.jobs, j)
	return []dbx.Row{j.row()}, nil
}

func (g *memGateway) updateJob(sql string, args []any) ([]dbx.Row, error) {
	where := whereID.FindStringSubmatch(sql)
	i := g.db.find(argAt(args, where[1]).(int64))
	if i < 0 {
		return []dbx.Row{}, nil
	}

	j := g.db.jobs[i]
	setClause := sql[len("UPDATE jobs SET "):strings.Index(sql, " WHERE ")]
	for _, m := range setColumn.FindAllStringSubmatch(setClause, -1) {
		v := argAt(args, m[2])
		switch m[1] {
		case "title":
			j.title = v.(string)
		case "salary":
			s := v.(int64)
			j.salary = &s
		case "equity":
			d, err := checkEquity(v)
			if err != nil {
				return nil, err
			}
			j.equity = d
		default:
			return nil, fmt.Errorf("column %q does not exist", m[1])
		}
	}
	g.db.jobs[i] = j
	return []dbx.Row{j.row()}, nil
}
