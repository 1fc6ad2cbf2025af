package repositories

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFiltersNarrowsByInterventionDate(t *testing.T) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Select(interventionJoinFields).From(interventionJoinClause)

	builder = applyFilters(builder, allowedInterventionFilters, map[string]interface{}{
		"date": "2026-03-14",
	})

	query, args, err := builder.ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "i.date = $1")
	assert.Equal(t, []interface{}{"2026-03-14"}, args)
}

func TestApplyFiltersIgnoresUnknownKeys(t *testing.T) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Select("COUNT(*)").From(interventionTable)

	builder = applyFilters(builder, allowedInterventionFilters, map[string]interface{}{
		"password_hash": "x",
	})

	query, args, err := builder.ToSql()
	require.NoError(t, err)
	assert.NotContains(t, query, "WHERE")
	assert.Empty(t, args)
}

func TestApplyFiltersSplitsCommaListIntoInClause(t *testing.T) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Select(interventionJoinFields).From(interventionJoinClause)

	builder = applyFilters(builder, allowedInterventionFilters, map[string]interface{}{
		"outcome_id": "1,3",
	})

	query, args, err := builder.ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "i.outcome_id IN ($1,$2)")
	assert.Equal(t, []interface{}{"1", "3"}, args)
}
