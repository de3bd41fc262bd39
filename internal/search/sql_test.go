package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mvaleed/personnel/internal/domain"
)

func TestRenderSQL(t *testing.T) {
	t.Run("no filter", func(t *testing.T) {
		query, args := RenderSQL(Build(domain.NewSearchCriteria()))

		assert.NotContains(t, query, "WHERE e.")
		assert.Contains(t, query, "ORDER BY "+SelectionOrderSQL)
		assert.Contains(t, query, "ORDER BY e.id ASC\n\t\tLIMIT $1 OFFSET $2")
		assert.Equal(t, []any{domain.DefaultSearchLimit, 0}, args)
	})

	t.Run("filters are parameterized and escaped", func(t *testing.T) {
		query, args := RenderSQL(Build(domain.SearchCriteria{Name: `50%_a\b`, DepartmentID: 7, Limit: 3, Offset: 6}))

		assert.Contains(t, query, `WHERE e.full_name LIKE $1 ESCAPE '\' AND e.department_id = $2`)
		assert.Contains(t, query, "LIMIT $3 OFFSET $4")
		assert.Equal(t, []any{`%50\%\_a\\b%`, int64(7), 3, 6}, args)
	})

	t.Run("order terms", func(t *testing.T) {
		query, _ := RenderSQL(Build(domain.SearchCriteria{
			SortName:      domain.SortAsc,
			SortCertLevel: domain.SortDesc,
			SortEndDate:   domain.SortAsc,
			Limit:         5,
		}))

		assert.Contains(t, query,
			`ORDER BY (sc.level IS NULL) ASC, sc.level ASC NULLS FIRST, e.full_name COLLATE "C" ASC, sc.end_date ASC NULLS FIRST, e.id ASC`)
	})

	t.Run("descending nulls last", func(t *testing.T) {
		query, _ := RenderSQL(Build(domain.SearchCriteria{SortCertLevel: domain.SortAsc, SortEndDate: domain.SortDesc}))

		assert.Contains(t, query, `ORDER BY sc.end_date DESC NULLS LAST, sc.level DESC NULLS LAST, e.id ASC`)
	})
}

func TestRenderCountSQL(t *testing.T) {
	query, args := RenderCountSQL(Filter{DepartmentID: 4})

	assert.Contains(t, query, "SELECT COUNT(*)")
	assert.Contains(t, query, "WHERE e.department_id = $1")
	assert.NotContains(t, query, "ORDER BY")
	assert.NotContains(t, query, "LIMIT")
	assert.NotContains(t, query, "certifications")
	assert.Equal(t, []any{int64(4)}, args)
}
