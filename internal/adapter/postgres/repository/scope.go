package repository

import (
	"fmt"
	"strings"

	"blogsvc/internal/core/scope"
)

var userScopeColumns = map[string]string{
	"active":    "active",
	"name":      "name",
	"user_type": "user_type",
}

var postScopeColumns = map[string]string{
	"published":  "published",
	"created_at": "created_at",
	"user_id":    "user_id",
}

// compileScope renders a scope.Query into WHERE/ORDER BY fragments.
// Ordering always ends with "id ASC" so that ties keep insertion order,
// matching the eager scope.Apply* interpretation.
func compileScope(q scope.Query, columns map[string]string) (string, []any, error) {
	var sb strings.Builder
	args := make([]any, 0, len(q.Conds))

	for i, c := range q.Conds {
		col, ok := columns[c.Field]
		if !ok {
			return "", nil, fmt.Errorf("unsupported scope field %q", c.Field)
		}
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		args = append(args, c.Value)
		fmt.Fprintf(&sb, "%s = $%d", col, len(args))
	}

	sb.WriteString(" ORDER BY ")
	for _, o := range q.Orders {
		col, ok := columns[o.Field]
		if !ok {
			return "", nil, fmt.Errorf("unsupported scope field %q", o.Field)
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		fmt.Fprintf(&sb, "%s %s, ", col, dir)
	}
	sb.WriteString("id ASC")

	return sb.String(), args, nil
}

// compileScopeCount renders only the WHERE fragment, for COUNT queries.
func compileScopeCount(q scope.Query, columns map[string]string) (string, []any, error) {
	clause, args, err := compileScope(scope.Query{Conds: q.Conds}, columns)
	if err != nil {
		return "", nil, err
	}
	return strings.TrimSuffix(clause, " ORDER BY id ASC"), args, nil
}
