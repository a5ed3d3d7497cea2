package importer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/nudge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDump = `{
  "todos": [
    {"id": "1718000000000-ab12", "text": "  pay rent ", "createdAt": 1749981600000,
     "startAt": null, "deadline": 1750067999000, "order": 0, "completed": false,
     "completedAt": null, "manualOrder": false},
    {"id": "1718000000001-cd34", "text": "ship release", "createdAt": 1749981600000,
     "startAt": 1750154400000, "deadline": 1750240800000, "order": 3, "completed": true,
     "completedAt": 1749985200000, "manualOrder": true}
  ],
  "notes": [{"id": "n1", "text": "door code 4411", "createdAt": 1749981600000}],
  "settings": {"floatingWidgetEnabled": true, "floatingWidgetCollapsed": false}
}`

func TestDecode_WellFormedDump(t *testing.T) {
	res, err := Decode(strings.NewReader(sampleDump))
	require.NoError(t, err)
	assert.Empty(t, res.Skipped)

	snap := res.Snapshot
	require.Len(t, snap.Todos, 2)
	rent := snap.Todos[0]
	assert.Equal(t, "1718000000000-ab12", rent.ID)
	assert.Equal(t, "pay rent", rent.Text)
	assert.Equal(t, time.UnixMilli(1750067999000).UTC(), rent.Deadline)
	assert.Nil(t, rent.StartAt)
	assert.Nil(t, rent.CompletedAt)

	ship := snap.Todos[1]
	require.NotNil(t, ship.StartAt)
	assert.Equal(t, time.UnixMilli(1750154400000).UTC(), *ship.StartAt)
	assert.True(t, ship.Completed)
	require.NotNil(t, ship.CompletedAt)
	assert.Equal(t, 3, ship.Order)
	assert.True(t, ship.ManualOrder)

	require.Len(t, snap.Notes, 1)
	assert.Equal(t, "door code 4411", snap.Notes[0].Text)
	assert.Equal(t, domain.Settings{WidgetEnabled: true}, snap.Settings)
}

func TestDecode_Normalization(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantTodos   int
		wantNotes   int
		wantSkipped int
		wantSet     domain.Settings
	}{
		{"empty object", `{}`, 0, 0, 0, domain.Settings{}},
		{"todos not an array", `{"todos": {"a": 1}, "notes": "nope"}`, 0, 0, 0, domain.Settings{}},
		{"settings not booleans", `{"settings": {"floatingWidgetEnabled": "yes", "floatingWidgetCollapsed": 1}}`, 0, 0, 0, domain.Settings{}},
		{"settings not an object", `{"settings": true}`, 0, 0, 0, domain.Settings{}},
		{"todo missing id", `{"todos": [{"text": "x", "deadline": 1750067999000}]}`, 0, 0, 1, domain.Settings{}},
		{"todo blank text", `{"todos": [{"id": "a", "text": "   ", "deadline": 1750067999000}]}`, 0, 0, 1, domain.Settings{}},
		{"todo missing deadline", `{"todos": [{"id": "a", "text": "x"}]}`, 0, 0, 1, domain.Settings{}},
		{"todo not an object", `{"todos": [42, {"id": "a", "text": "x", "deadline": 1750067999000}]}`, 1, 0, 1, domain.Settings{}},
		{"note missing createdAt", `{"notes": [{"id": "n", "text": "x"}]}`, 0, 0, 1, domain.Settings{}},
		{"collapsed only", `{"settings": {"floatingWidgetCollapsed": true}}`, 0, 0, 0, domain.Settings{WidgetCollapsed: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Decode(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Len(t, res.Snapshot.Todos, tt.wantTodos)
			assert.Len(t, res.Snapshot.Notes, tt.wantNotes)
			assert.Len(t, res.Skipped, tt.wantSkipped)
			assert.Equal(t, tt.wantSet, res.Snapshot.Settings)
		})
	}
}

func TestDecode_LooseFieldTypes(t *testing.T) {
	input := `{"todos": [{"id": 17, "text": "x", "deadline": 1750067999000.0,
		"startAt": "soon", "completed": "true", "completedAt": 1749985200000, "order": "2"}]}`
	res, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, res.Snapshot.Todos, 1)

	got := res.Snapshot.Todos[0]
	assert.Equal(t, "17", got.ID)
	assert.Nil(t, got.StartAt, "non-numeric start is absent")
	assert.False(t, got.Completed)
	assert.Nil(t, got.CompletedAt, "completedAt is ignored on an open todo")
	assert.Equal(t, 0, got.Order, "order falls back to the array index")
	assert.Equal(t, got.Deadline, got.CreatedAt, "missing createdAt falls back to the deadline")
}

func TestDecode_DuplicateIDsKeepFirst(t *testing.T) {
	dump := `{
	  "todos": [
	    {"id": "a", "text": "first", "createdAt": 1749981600000, "deadline": 1750067999000},
	    {"id": "a", "text": "second", "createdAt": 1749981600000, "deadline": 1750067999000},
	    {"id": "b", "text": "other", "createdAt": 1749981600000, "deadline": 1750067999000}
	  ],
	  "notes": [
	    {"id": "n", "text": "kept", "createdAt": 1749981600000},
	    {"id": "n", "text": "dropped", "createdAt": 1749981600000}
	  ]
	}`

	res, err := Decode(strings.NewReader(dump))
	require.NoError(t, err)

	require.Len(t, res.Snapshot.Todos, 2)
	assert.Equal(t, "first", res.Snapshot.Todos[0].Text)
	assert.Equal(t, "b", res.Snapshot.Todos[1].ID)
	require.Len(t, res.Snapshot.Notes, 1)
	assert.Equal(t, "kept", res.Snapshot.Notes[0].Text)

	require.Len(t, res.Skipped, 2)
	assert.ErrorIs(t, res.Skipped[0], errDuplicate)
	assert.Contains(t, res.Skipped[0].Error(), "todos[1]")
	assert.ErrorIs(t, res.Skipped[1], errDuplicate)
	assert.Contains(t, res.Skipped[1].Error(), "notes[1]")
}

func TestDecode_NotAnObject(t *testing.T) {
	_, err := Decode(strings.NewReader(`[1, 2`))
	assert.Error(t, err)
}

func TestEncode_DecodePreservesSnapshot(t *testing.T) {
	start := time.Date(2025, 6, 17, 9, 0, 0, 0, time.UTC)
	done := time.Date(2025, 6, 15, 11, 0, 0, 0, time.UTC)
	snap := domain.Snapshot{
		Todos: []domain.Todo{
			{ID: "a", Text: "one", CreatedAt: done.Add(-time.Hour), Deadline: start.Add(time.Hour), StartAt: &start, Order: 1, ManualOrder: true},
			{ID: "b", Text: "two", CreatedAt: done.Add(-time.Hour), Deadline: done, Completed: true, CompletedAt: &done},
		},
		Notes:    []domain.Note{{ID: "n", Text: "note", CreatedAt: done}},
		Settings: domain.Settings{WidgetEnabled: true, WidgetCollapsed: true},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, snap))
	assert.Contains(t, buf.String(), `"floatingWidgetEnabled": true`)
	assert.Contains(t, buf.String(), `"startAt": null`)

	res, err := Decode(&buf)
	require.NoError(t, err)
	assert.Empty(t, res.Skipped)
	assert.Equal(t, snap, res.Snapshot)
}
