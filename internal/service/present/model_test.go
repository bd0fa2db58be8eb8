package present

import (
	"testing"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/domain"
)

func rankedTasks(ids ...string) []domain.RankedTask {
	tasks := make([]domain.RankedTask, 0, len(ids))
	for _, id := range ids {
		tasks = append(tasks, domain.RankedTask{
			Task: domain.TaskDeadline{ID: id},
		})
	}
	return tasks
}

func TestModel_EmptySnapshot(t *testing.T) {
	m := NewModel()

	if _, ok := m.Current(); ok {
		t.Error("Current() on empty model should report false")
	}
	if _, ok := m.Next(); ok {
		t.Error("Next() on empty model should report false")
	}
	if _, ok := m.Prev(); ok {
		t.Error("Prev() on empty model should report false")
	}
	if got := m.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}
}

func TestModel_CursorWrapsForward(t *testing.T) {
	m := NewModel()
	m.Update(rankedTasks("a", "b", "c"))

	wantOrder := []string{"b", "c", "a", "b"}
	for i, want := range wantOrder {
		got, ok := m.Next()
		if !ok {
			t.Fatalf("Next() call %d reported empty", i)
		}
		if got.Task.ID != want {
			t.Errorf("Next() call %d = %q, want %q", i, got.Task.ID, want)
		}
	}
}

func TestModel_CursorWrapsBackward(t *testing.T) {
	m := NewModel()
	m.Update(rankedTasks("a", "b", "c"))

	got, ok := m.Prev()
	if !ok {
		t.Fatal("Prev() reported empty")
	}
	if got.Task.ID != "c" {
		t.Errorf("Prev() from first entry = %q, want %q", got.Task.ID, "c")
	}
}

func TestModel_UpdateResetsCursor(t *testing.T) {
	m := NewModel()
	m.Update(rankedTasks("a", "b", "c"))
	m.Next()
	m.Next()

	m.Update(rankedTasks("x", "y"))

	if got := m.Cursor(); got != 0 {
		t.Errorf("cursor after update = %d, want 0", got)
	}
	current, ok := m.Current()
	if !ok || current.Task.ID != "x" {
		t.Errorf("Current() after update = %v, want task x", current.Task.ID)
	}
}

func TestModel_SetCursor(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  int
	}{
		{name: "in range", index: 2, want: 2},
		{name: "negative clamps to zero", index: -1, want: 0},
		{name: "past end clamps to zero", index: 3, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel()
			m.Update(rankedTasks("a", "b", "c"))

			m.SetCursor(tt.index)
			if got := m.Cursor(); got != tt.want {
				t.Errorf("SetCursor(%d) cursor = %d, want %d", tt.index, got, tt.want)
			}
		})
	}
}

func TestModel_AlertsReturnsCopy(t *testing.T) {
	m := NewModel()
	m.Update(rankedTasks("a", "b"))

	alerts := m.Alerts()
	alerts[0].Task.ID = "mutated"

	fresh := m.Alerts()
	if fresh[0].Task.ID != "a" {
		t.Errorf("snapshot mutated through returned slice: %q", fresh[0].Task.ID)
	}
}
