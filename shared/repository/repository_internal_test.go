package repository

import (
	"hotel/shared/dto"
	"hotel/shared/model"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRow struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	RoomType string `db:"room_type" table:"rooms" column:"type"`
	Skipped  string
	model.Metadata
}

type sampleLink struct {
	ReservationID int64 `db:"reservation_id"`
	ServiceID     int64 `db:"service_id"`
}

func TestGetColumns(t *testing.T) {
	columns, insertColumns := getColumns("samples", "id", reflect.TypeOf(sampleRow{}))

	assert.Equal(t, []string{"name", "created_at", "modified_at", "created_by", "modified_by"}, insertColumns)
	assert.Contains(t, columns, column{name: "id", table: "samples"})
	assert.Contains(t, columns, column{name: "type", table: "rooms", alias: "room_type"})
	assert.NotContains(t, insertColumns, "room_type")
}

func TestGetColumnsLinkTable(t *testing.T) {
	_, insertColumns := getColumns("reservation_services", "", reflect.TypeOf(sampleLink{}))

	assert.Equal(t, []string{"reservation_id", "service_id"}, insertColumns)
}

func TestGetOrdering(t *testing.T) {
	columns, _ := getColumns("samples", "id", reflect.TypeOf(sampleRow{}))
	repo := Repository[sampleRow]{table: "samples", primaryColumn: "id", columns: columns}

	tests := []struct {
		name     string
		params   dto.QueryParams
		expected string
	}{
		{
			name:     "defaults to primary column",
			params:   dto.QueryParams{},
			expected: "ORDER BY samples.id ASC",
		},
		{
			name:     "known column",
			params:   dto.QueryParams{SortBy: "name", SortDir: dto.SortDirDesc},
			expected: "ORDER BY samples.name DESC",
		},
		{
			name:     "unknown column falls back to primary column",
			params:   dto.QueryParams{SortBy: "name; DROP TABLE samples", SortDir: dto.SortDirDesc},
			expected: "ORDER BY samples.id DESC",
		},
		{
			name:     "joined column is not sortable",
			params:   dto.QueryParams{SortBy: "room_type"},
			expected: "ORDER BY samples.id ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, repo.getOrdering(tt.params))
		})
	}
}

func TestColumnSelectExpr(t *testing.T) {
	assert.Equal(t, "total", column{name: "total"}.selectExpr())
	assert.Equal(t, "samples.name", column{name: "name", table: "samples"}.selectExpr())
	assert.Equal(t, "rooms.type AS room_type", column{name: "type", table: "rooms", alias: "room_type"}.selectExpr())
}

func TestInsertValues(t *testing.T) {
	repo := Repository[sampleLink]{InsertColumns: []string{"reservation_id", "service_id"}}

	assert.Equal(t, ":reservation_id, :service_id", repo.insertValues())
}
