package dbx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SQLSTATE codes for integrity constraint violations
const (
	CodeNotNullViolation    pq.ErrorCode = "23502"
	CodeForeignKeyViolation pq.ErrorCode = "23503"
	CodeUniqueViolation     pq.ErrorCode = "23505"
	CodeCheckViolation      pq.ErrorCode = "23514"

	CodeNumericOutOfRange pq.ErrorCode = "22003"
)

// Violation describes a constraint failure reported by PostgreSQL
type Violation struct {
	Code       pq.ErrorCode
	Table      string
	Column     string
	Constraint string
	Detail     string
}

// AsViolation extracts an integrity constraint violation from err
func AsViolation(err error) (*Violation, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil, false
	}
	if pqErr.Code.Class() != "23" {
		return nil, false
	}
	return &Violation{
		Code:       pqErr.Code,
		Table:      pqErr.Table,
		Column:     pqErr.Column,
		Constraint: pqErr.Constraint,
		Detail:     pqErr.Detail,
	}, true
}

func IsUniqueViolation(err error) bool {
	v, ok := AsViolation(err)
	return ok && v.Code == CodeUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	v, ok := AsViolation(err)
	return ok && v.Code == CodeForeignKeyViolation
}

// IsOutOfRange reports a value that does not fit its column type
func IsOutOfRange(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == CodeNumericOutOfRange
}

// Message renders a client-safe sentence for the violation
func (v *Violation) Message() string {
	switch v.Code {
	case CodeForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName(v.Table, referencedColumn(v)))
	case CodeUniqueViolation:
		return fmt.Sprintf("A %s with this identifier already exists", entityName(v.Table, ""))
	case CodeNotNullViolation:
		return fmt.Sprintf("The %s is required", humanize(v.Column))
	case CodeCheckViolation:
		if v.Column != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", humanize(v.Column))
		}
		return "One or more values do not meet required conditions"
	default:
		return "The request violates a data constraint"
	}
}

// referencedColumn guesses the FK column from "Key (company_handle)=(x) is not present ..."
func referencedColumn(v *Violation) string {
	if v.Column != "" {
		return v.Column
	}
	start := strings.Index(v.Detail, "(")
	end := strings.Index(v.Detail, ")")
	if start >= 0 && end > start {
		return v.Detail[start+1 : end]
	}
	return ""
}

// entityName prefers the column stem ("company_handle" -> "Company") and
// falls back to the singular table name
func entityName(table, column string) string {
	column = strings.ToLower(column)
	for _, suffix := range []string{"_id", "_handle"} {
		if strings.HasSuffix(column, suffix) {
			return humanize(strings.TrimSuffix(column, suffix))
		}
	}
	if table != "" {
		return humanize(strings.TrimSuffix(table, "s"))
	}
	return "record"
}

func humanize(s string) string {
	if s == "" {
		return "field"
	}
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}
