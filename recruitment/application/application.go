package application

import (
	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// State is the caller-supplied status of an application. The service
// stores it verbatim.
type State string

func (s State) String() string { return string(s) }

// Application links a user to a job. (JobID, Username) is unique.
type Application struct {
	JobID    kernel.JobID    `db:"job_id" json:"job_id"`
	Username kernel.Username `db:"username" json:"username"`
	State    State           `db:"state" json:"state"`
}
