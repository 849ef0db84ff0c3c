// Package sqlbuild assembles parameterized PostgreSQL statements.
//
// Builders are values: every method returns a new builder and never
// mutates the receiver, so a base query can be shared and extended
// concurrently. Placeholders are numbered when a predicate is added,
// which keeps the statement text and the argument list in lockstep.
package sqlbuild

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Abraxas-365/jobboard/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("SQL")

var (
	CodeNoFields      = ErrRegistry.Register("NO_FIELDS", errx.TypeValidation, http.StatusBadRequest, "No fields to update")
	CodeInvalidColumn = ErrRegistry.Register("INVALID_COLUMN", errx.TypeValidation, http.StatusBadRequest, "Invalid column name")
)

func ErrNoFields() *errx.Error {
	return ErrRegistry.New(CodeNoFields)
}

func ErrInvalidColumn() *errx.Error {
	return ErrRegistry.New(CodeInvalidColumn)
}

// Statement is a finished query and its positional arguments
type Statement struct {
	SQL  string
	Args []any
}

// bind rewrites every '?' in expr to $n, starting after the existing
// arguments, and returns the new text with the extended argument list.
func bind(expr string, existing []any, args []any) (string, []any) {
	out := make([]any, len(existing), len(existing)+len(args))
	copy(out, existing)

	var sb strings.Builder
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && next < len(args) {
			out = append(out, args[next])
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(len(out)))
			next++
			continue
		}
		sb.WriteByte(expr[i])
	}
	return sb.String(), out
}

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}
