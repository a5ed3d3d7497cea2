package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/nudge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// activeTrio returns t1, t2, t3 which auto-sort in that order.
func activeTrio() []domain.Todo {
	return []domain.Todo{
		makeTodo("t1", testNow.Add(10*time.Minute)),
		makeTodo("t2", testNow.Add(time.Hour)),
		makeTodo("t3", testNow.Add(10*time.Hour)),
	}
}

func TestReorder_MovesDraggedToTarget(t *testing.T) {
	todos := activeTrio()
	require.Equal(t, []string{"t1", "t2", "t3"}, ids(Arrange(todos, testNow)))

	out, changed := Reorder(todos, testNow, "t3", "t1")

	require.True(t, changed)
	assert.Equal(t, []string{"t3", "t1", "t2"}, ids(out))
	for i, td := range out {
		assert.True(t, td.ManualOrder, "%s should be pinned", td.ID)
		assert.Equal(t, i, td.Order)
	}
	assert.Equal(t, []string{"t3", "t1", "t2"}, ids(Arrange(out, testNow)), "manual order survives re-arrangement")
}

func TestReorder_MoveDown(t *testing.T) {
	out, changed := Reorder(activeTrio(), testNow, "t1", "t3")

	require.True(t, changed)
	assert.Equal(t, []string{"t2", "t3", "t1"}, ids(out))
}

func TestReorder_UpcomingPinnedCompletedNot(t *testing.T) {
	todos := append(activeTrio(),
		makeTodo("u2", testNow.Add(20*time.Hour), startingAt(testNow.Add(2*time.Hour))),
		makeTodo("c1", testNow.Add(time.Hour), completedAt(testNow)),
		makeTodo("u1", testNow.Add(20*time.Hour), startingAt(testNow.Add(1*time.Hour))),
	)

	out, changed := Reorder(todos, testNow, "t3", "t1")

	require.True(t, changed)
	assert.Equal(t, []string{"t3", "t1", "t2", "u1", "u2", "c1"}, ids(out))
	for i, td := range out {
		assert.Equal(t, i, td.Order, "%s", td.ID)
	}
	assert.True(t, out[3].ManualOrder, "upcoming todos are pinned too")
	assert.True(t, out[4].ManualOrder)
	assert.False(t, out[5].ManualOrder, "completed todos are left unpinned")
}

func TestReorder_NoOps(t *testing.T) {
	upcoming := makeTodo("u1", testNow.Add(20*time.Hour), startingAt(testNow.Add(time.Hour)))
	todos := append(activeTrio(), upcoming)

	cases := []struct {
		name, dragged, target string
	}{
		{"drop onto self", "t1", "t1"},
		{"unknown dragged", "nope", "t1"},
		{"unknown target", "t1", "nope"},
		{"empty dragged", "", "t1"},
		{"upcoming is not draggable", "u1", "t1"},
		{"upcoming is not a drop target", "t1", "u1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, changed := Reorder(todos, testNow, tc.dragged, tc.target)
			assert.False(t, changed)
			assert.Equal(t, todos, out)
			assert.False(t, IsManual(out))
		})
	}
}

func TestReorder_DoesNotMutateInput(t *testing.T) {
	todos := activeTrio()
	_, changed := Reorder(todos, testNow, "t3", "t1")
	require.True(t, changed)

	for _, td := range todos {
		assert.False(t, td.ManualOrder)
		assert.Equal(t, 0, td.Order)
	}
}

func TestReorder_InManualModeUsesDisplayedOrder(t *testing.T) {
	first, _ := Reorder(activeTrio(), testNow, "t3", "t1") // t3 t1 t2
	second, changed := Reorder(first, testNow, "t2", "t3")

	require.True(t, changed)
	assert.Equal(t, []string{"t2", "t3", "t1"}, ids(second))
}

func TestClearManualOrder_ThenAutoSortRecomputes(t *testing.T) {
	manual, _ := Reorder(activeTrio(), testNow, "t3", "t1")
	require.True(t, IsManual(manual))

	cleared := ClearManualOrder(manual)

	for _, td := range cleared {
		assert.False(t, td.ManualOrder)
	}
	assert.True(t, IsManual(manual), "input must not be mutated")
	assert.Equal(t, []string{"t1", "t2", "t3"}, ids(Arrange(cleared, testNow)), "manual arrangement is lost")
}
