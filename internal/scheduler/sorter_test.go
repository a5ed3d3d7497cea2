package scheduler

import (
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/nudge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoSort_BucketOrder(t *testing.T) {
	todos := []domain.Todo{
		makeTodo("done", testNow.Add(time.Hour), completedAt(testNow)),
		makeTodo("later", testNow.Add(5*time.Hour), startingAt(testNow.Add(2*time.Hour))),
		makeTodo("active", testNow.Add(time.Hour)),
	}

	sorted := AutoSort(todos, testNow)

	assert.Equal(t, []string{"active", "later", "done"}, ids(sorted))
}

func TestAutoSort_OverdueFirst(t *testing.T) {
	todos := []domain.Todo{
		// Nearly due: urgency close to 1 but not overdue.
		makeTodo("hot", testNow.Add(time.Minute)),
		// Overdue by a minute.
		makeTodo("late", testNow.Add(-time.Minute)),
	}

	sorted := AutoSort(todos, testNow)

	assert.Equal(t, []string{"late", "hot"}, ids(sorted), "any overdue todo sorts before any non-overdue one")
}

func TestAutoSort_UrgencyDescending(t *testing.T) {
	// All created an hour ago; shorter windows are further through.
	todos := []domain.Todo{
		makeTodo("calm", testNow.Add(10*time.Hour)),
		makeTodo("urgent", testNow.Add(10*time.Minute)),
		makeTodo("medium", testNow.Add(time.Hour)),
	}

	sorted := AutoSort(todos, testNow)

	assert.Equal(t, []string{"urgent", "medium", "calm"}, ids(sorted))
}

func TestAutoSort_UpcomingByStartThenDeadline(t *testing.T) {
	todos := []domain.Todo{
		makeTodo("u3", testNow.Add(10*time.Hour), startingAt(testNow.Add(3*time.Hour))),
		makeTodo("u1", testNow.Add(10*time.Hour), startingAt(testNow.Add(1*time.Hour))),
		makeTodo("u2", testNow.Add(10*time.Hour), startingAt(testNow.Add(2*time.Hour))),
	}

	sorted := AutoSort(todos, testNow)

	assert.Equal(t, []string{"u1", "u2", "u3"}, ids(sorted))
}

func TestAutoSort_RewritesOrderWithoutMutatingInput(t *testing.T) {
	todos := []domain.Todo{
		makeTodo("b", testNow.Add(10*time.Hour), withOrder(7)),
		makeTodo("a", testNow.Add(10*time.Minute), withOrder(3)),
	}

	sorted := AutoSort(todos, testNow)

	require.Len(t, sorted, 2)
	assert.Equal(t, "a", sorted[0].ID)
	assert.Equal(t, 0, sorted[0].Order)
	assert.Equal(t, 1, sorted[1].Order)
	assert.Equal(t, 7, todos[0].Order, "input must not be mutated")
	assert.Equal(t, 3, todos[1].Order)
}

func TestArrange_ManualModeUsesOrderOnly(t *testing.T) {
	todos := []domain.Todo{
		makeTodo("overdue", testNow.Add(-time.Hour), withOrder(2)),
		makeTodo("done", testNow.Add(time.Hour), completedAt(testNow), withOrder(0)),
		makeTodo("calm", testNow.Add(10*time.Hour), pinned(1)),
	}

	arranged := Arrange(todos, testNow)

	assert.Equal(t, []string{"done", "calm", "overdue"}, ids(arranged), "one pinned todo puts the whole list in manual mode")
}

func TestArrange_AutoWhenNothingPinned(t *testing.T) {
	todos := []domain.Todo{
		makeTodo("calm", testNow.Add(10*time.Hour), withOrder(0)),
		makeTodo("overdue", testNow.Add(-time.Hour), withOrder(1)),
	}

	assert.Equal(t, []string{"overdue", "calm"}, ids(Arrange(todos, testNow)))
}

func TestIsManual(t *testing.T) {
	assert.False(t, IsManual(nil))
	assert.False(t, IsManual([]domain.Todo{makeTodo("a", testNow)}))
	assert.True(t, IsManual([]domain.Todo{makeTodo("a", testNow), makeTodo("b", testNow, pinned(0))}))
}

func randomCollection(rng *rand.Rand, n int) []domain.Todo {
	todos := make([]domain.Todo, n)
	for i := range todos {
		deadline := testNow.Add(time.Duration(rng.Intn(600)-120) * time.Minute)
		opts := []todoOpt{createdAt(testNow.Add(-time.Duration(rng.Intn(600)) * time.Minute)), withOrder(rng.Intn(n))}
		switch rng.Intn(4) {
		case 0:
			opts = append(opts, startingAt(testNow.Add(time.Duration(rng.Intn(300)-60)*time.Minute)))
		case 1:
			opts = append(opts, completedAt(testNow.Add(-time.Duration(rng.Intn(300))*time.Minute)))
		}
		todos[i] = makeTodo(string(rune('a'+i)), deadline, opts...)
	}
	return todos
}

// TestAutoSort_Invariant_Idempotent checks that sorting an already sorted list
// with the same now leaves it unchanged.
func TestAutoSort_Invariant_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for trial := 0; trial < 200; trial++ {
		todos := randomCollection(rng, rng.Intn(12)+1)

		once := AutoSort(todos, testNow)
		twice := AutoSort(once, testNow)

		assert.Equal(t, ids(once), ids(twice), "trial %d", trial)
		for i := range twice {
			assert.Equal(t, i, twice[i].Order, "trial %d", trial)
		}
	}
}

// TestArrange_Invariant_ManualIsAscendingOrder checks that in manual mode the
// displayed order is exactly ascending Order, whatever the statuses.
func TestArrange_Invariant_ManualIsAscendingOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for trial := 0; trial < 200; trial++ {
		todos := randomCollection(rng, rng.Intn(12)+1)
		todos[rng.Intn(len(todos))].ManualOrder = true

		arranged := Arrange(todos, testNow)

		require.Len(t, arranged, len(todos))
		for i := 1; i < len(arranged); i++ {
			assert.LessOrEqual(t, arranged[i-1].Order, arranged[i].Order, "trial %d", trial)
		}
	}
}
