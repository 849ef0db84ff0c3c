package sqlbuild

import (
	"fmt"
	"regexp"
	"strings"
)

var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Field is one column assignment of a partial update
type Field struct {
	Column string
	Value  any
}

// Fields is an ordered, sparse set of assignments
type Fields []Field

// Set returns a copy of f with column assigned to value
func (f Fields) Set(column string, value any) Fields {
	out := make(Fields, len(f), len(f)+1)
	copy(out, f)
	return append(out, Field{Column: column, Value: value})
}

// Columns lists the assigned column names in order
func (f Fields) Columns() []string {
	cols := make([]string, len(f))
	for i, field := range f {
		cols[i] = field.Column
	}
	return cols
}

// Update renders
//
//	UPDATE table SET c1 = $1, ..., cN = $N WHERE idColumn = $N+1 RETURNING *
//
// Column names are written verbatim; callers decide which columns may be
// updated. Names are still checked to be plain lower-case identifiers so a
// bad whitelist cannot inject SQL.
func Update(table string, fields Fields, idColumn string, id any) (Statement, error) {
	if len(fields) == 0 {
		return Statement{}, ErrNoFields().WithDetail("table", table)
	}
	for _, name := range append([]string{table, idColumn}, fields.Columns()...) {
		if !identPattern.MatchString(name) {
			return Statement{}, ErrInvalidColumn().WithDetail("column", name)
		}
	}

	sets := make([]string, len(fields))
	args := make([]any, 0, len(fields)+1)
	for i, field := range fields {
		args = append(args, field.Value)
		sets[i] = fmt.Sprintf("%s = %s", field.Column, placeholder(len(args)))
	}
	args = append(args, id)

	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s RETURNING *",
		table, strings.Join(sets, ", "), idColumn, placeholder(len(args)))

	return Statement{SQL: sql, Args: args}, nil
}
