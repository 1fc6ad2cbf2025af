package repositories

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// applyFilters adds one WHERE predicate per whitelisted filter key.
// A comma-separated value becomes an IN list; keys outside the
// whitelist are ignored so callers cannot filter on arbitrary columns.
func applyFilters(builder sq.SelectBuilder, allowed map[string]string, filters map[string]interface{}) sq.SelectBuilder {
	for key, value := range filters {
		column, ok := allowed[key]
		if !ok {
			continue
		}
		if strVal, ok := value.(string); ok && strings.Contains(strVal, ",") {
			builder = builder.Where(sq.Eq{column: strings.Split(strVal, ",")})
		} else {
			builder = builder.Where(sq.Eq{column: value})
		}
	}
	return builder
}
