package sqlbuild

import (
	"strings"
)

// SelectBuilder composes a SELECT from a base statement and AND-ed
// predicates. The base may already reference $1..$k; those arguments are
// passed to Select and later predicates continue the numbering.
type SelectBuilder struct {
	base       string
	args       []any
	predicates []string
	orderBy    string
	limit      *int
	offset     *int
}

// Select starts a builder. baseArgs are the values bound by the base text.
func Select(base string, baseArgs ...any) SelectBuilder {
	args := make([]any, len(baseArgs))
	copy(args, baseArgs)
	return SelectBuilder{base: strings.TrimSpace(base), args: args}
}

// Where appends a predicate. Each '?' in pred is bound, in order, to the
// next value in args.
func (b SelectBuilder) Where(pred string, args ...any) SelectBuilder {
	text, bound := bind(pred, b.args, args)

	preds := make([]string, len(b.predicates), len(b.predicates)+1)
	copy(preds, b.predicates)

	b.predicates = append(preds, text)
	b.args = bound
	return b
}

// OrderBy sets the ORDER BY expression. Callers pass trusted text only.
func (b SelectBuilder) OrderBy(expr string) SelectBuilder {
	b.orderBy = expr
	return b
}

// Limit bounds the number of rows returned
func (b SelectBuilder) Limit(n int) SelectBuilder {
	b.limit = &n
	return b
}

// Offset skips n rows after ordering
func (b SelectBuilder) Offset(n int) SelectBuilder {
	b.offset = &n
	return b
}

// Build renders the statement. No WHERE is emitted without predicates.
func (b SelectBuilder) Build() Statement {
	var sb strings.Builder
	sb.WriteString(b.base)

	args := make([]any, len(b.args), len(b.args)+2)
	copy(args, b.args)

	if len(b.predicates) > 0 {
		sb.WriteString("\nWHERE ")
		sb.WriteString(strings.Join(b.predicates, " AND "))
	}
	if b.orderBy != "" {
		sb.WriteString("\nORDER BY ")
		sb.WriteString(b.orderBy)
	}
	if b.limit != nil {
		args = append(args, *b.limit)
		sb.WriteString("\nLIMIT ")
		sb.WriteString(placeholder(len(args)))
	}
	if b.offset != nil {
		args = append(args, *b.offset)
		sb.WriteString(" OFFSET ")
		sb.WriteString(placeholder(len(args)))
	}

	return Statement{SQL: sb.String(), Args: args}
}
