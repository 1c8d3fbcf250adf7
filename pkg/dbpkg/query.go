package dbpkg

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Builder builds PostgreSQL statements with $n placeholders.
var Builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Contains returns an ILIKE pattern matching any value that contains s.
func Contains(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// SearchAny matches rows where at least one of the columns contains s, ignoring case.
func SearchAny(s string, columns ...string) sq.Sqlizer {
	pattern := Contains(s)

	or := make(sq.Or, 0, len(columns))
	for _, c := range columns {
		or = append(or, sq.ILike{c: pattern})
	}

	return or
}
