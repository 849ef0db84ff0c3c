package kernel

import "strconv"

// Username identifies the acting user. It is opaque to this service.
type Username string

func NewUsername(name string) Username { return Username(name) }
func (u Username) String() string      { return string(u) }
func (u Username) IsEmpty() bool       { return string(u) == "" }

type CompanyHandle string

func NewCompanyHandle(h string) CompanyHandle { return CompanyHandle(h) }
func (h CompanyHandle) String() string        { return string(h) }
func (h CompanyHandle) IsEmpty() bool         { return string(h) == "" }

// JobID is the generated integer key of a job row
type JobID int64

func NewJobID(id int64) JobID  { return JobID(id) }
func (j JobID) Int64() int64   { return int64(j) }
func (j JobID) String() string { return strconv.FormatInt(int64(j), 10) }

// ParseJobID parses a decimal job id, rejecting non-positive values
func ParseJobID(s string) (JobID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, strconv.ErrRange
	}
	return JobID(n), nil
}
