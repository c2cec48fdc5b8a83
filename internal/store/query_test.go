package store

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

func ptr[T any](v T) *T { return &v }

func TestListQuery_ToSQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      *ListQuery
		ph         sq.PlaceholderFormat
		wantHas    []string
		wantNotHas []string
		wantArgs   []any
	}{
		{
			name:  "nil query lists everything by id",
			query: nil,
			ph:    sq.Dollar,
			wantHas: []string{
				"FROM equipements",
				"COALESCE(NULLIF(statut, ''), 'Fonctionnel')",
				"ORDER BY id ASC",
			},
			wantNotHas: []string{"WHERE", "LIMIT"},
		},
		{
			name:     "name filter with dollar placeholders",
			query:    &ListQuery{Name: ptr("Routeur X")},
			ph:       sq.Dollar,
			wantHas:  []string{"WHERE nom = $1"},
			wantArgs: []any{"Routeur X"},
		},
		{
			name:     "name filter with question placeholders",
			query:    &ListQuery{Name: ptr("Routeur X")},
			ph:       sq.Question,
			wantHas:  []string{"WHERE nom = ?"},
			wantArgs: []any{"Routeur X"},
		},
		{
			name: "all filters numbered in order",
			query: &ListQuery{
				Name:   ptr("Switch"),
				Type:   ptr("Cisco"),
				Status: ptr(domain.StatusBroken),
			},
			ph: sq.Dollar,
			wantHas: []string{
				"nom = $1",
				"type = $2",
				"COALESCE(NULLIF(statut, ''), 'Fonctionnel') = $3",
				" AND ",
			},
			wantArgs: []any{"Switch", "Cisco", "En Panne"},
		},
		{
			name:    "order by name",
			query:   &ListQuery{OrderBy: "name"},
			ph:      sq.Dollar,
			wantHas: []string{"ORDER BY nom ASC, type ASC, id ASC"},
		},
		{
			name:    "order by quantity",
			query:   &ListQuery{OrderBy: "QUANTITY"},
			ph:      sq.Dollar,
			wantHas: []string{"ORDER BY quantite ASC, id ASC"},
		},
		{
			name:       "invalid order by falls back to id",
			query:      &ListQuery{OrderBy: "id; DROP TABLE equipements"},
			ph:         sq.Dollar,
			wantHas:    []string{"ORDER BY id ASC"},
			wantNotHas: []string{"DROP TABLE"},
		},
		{
			name:    "limit and offset",
			query:   &ListQuery{Limit: 25, Offset: 100},
			ph:      sq.Question,
			wantHas: []string{"LIMIT 25", "OFFSET 100"},
		},
		{
			name:    "limit is capped",
			query:   &ListQuery{Limit: 5000},
			ph:      sq.Question,
			wantHas: []string{"LIMIT 1000"},
		},
		{
			name:       "non-positive limit and offset are ignored",
			query:      &ListQuery{Limit: -1, Offset: -5},
			ph:         sq.Question,
			wantNotHas: []string{"LIMIT", "OFFSET"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sql, args, err := tt.query.ToSQL(tt.ph)
			require.NoError(t, err)

			for _, s := range tt.wantHas {
				assert.Contains(t, sql, s)
			}
			for _, s := range tt.wantNotHas {
				assert.NotContains(t, sql, s)
			}
			if tt.wantArgs != nil {
				assert.Equal(t, tt.wantArgs, args)
			} else {
				assert.Empty(t, args)
			}
		})
	}
}

func TestListQuery_Matches(t *testing.T) {
	t.Parallel()

	e := &domain.Equipment{Name: "Switch", Type: "Cisco", Status: domain.StatusMaintenance}

	tests := []struct {
		name  string
		query *ListQuery
		want  bool
	}{
		{name: "nil matches", query: nil, want: true},
		{name: "empty matches", query: &ListQuery{}, want: true},
		{name: "same name", query: &ListQuery{Name: ptr("Switch")}, want: true},
		{name: "other name", query: &ListQuery{Name: ptr("Routeur")}, want: false},
		{name: "other type", query: &ListQuery{Type: ptr("Huawei")}, want: false},
		{name: "same status", query: &ListQuery{Status: ptr(domain.StatusMaintenance)}, want: true},
		{name: "other status", query: &ListQuery{Status: ptr(domain.StatusBroken)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.query.Matches(e))
		})
	}
}

func TestListQuery_Apply(t *testing.T) {
	t.Parallel()

	rows := []domain.Equipment{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}

	assert.Len(t, (*ListQuery)(nil).apply(rows), 4)
	assert.Equal(t, []domain.Equipment{{ID: 2}, {ID: 3}}, (&ListQuery{Offset: 1, Limit: 2}).apply(rows))
	assert.Empty(t, (&ListQuery{Offset: 10}).apply(rows))
	assert.Len(t, (&ListQuery{Limit: 10}).apply(rows), 4)
}
