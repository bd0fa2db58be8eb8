package present

import (
	"sync"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/domain"
)

// Model holds the ranked alert snapshot shown on the in-app surface plus a
// wrapping cursor for the single-item pager. It is safe for concurrent use
// by the coordinator (writes) and the HTTP handlers (reads).
type Model struct {
	mu     sync.RWMutex
	alerts []domain.RankedTask
	cursor int
}

func NewModel() *Model {
	return &Model{}
}

// Update replaces the snapshot. The cursor always resets to the top entry;
// positions in the old list are meaningless against the new one.
func (m *Model) Update(alerts []domain.RankedTask) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.alerts = make([]domain.RankedTask, len(alerts))
	copy(m.alerts, alerts)
	m.cursor = 0
}

// Alerts returns a copy of the current snapshot in rank order.
func (m *Model) Alerts() []domain.RankedTask {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.RankedTask, len(m.alerts))
	copy(out, m.alerts)
	return out
}

func (m *Model) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.alerts)
}

func (m *Model) Cursor() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cursor
}

// Current returns the alert under the cursor, or false when the snapshot is
// empty.
func (m *Model) Current() (domain.RankedTask, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.alerts) == 0 {
		return domain.RankedTask{}, false
	}
	return m.alerts[m.cursor], true
}

// Next advances the cursor, wrapping past the end, and returns the alert it
// lands on.
func (m *Model) Next() (domain.RankedTask, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.alerts) == 0 {
		return domain.RankedTask{}, false
	}
	m.cursor = (m.cursor + 1) % len(m.alerts)
	return m.alerts[m.cursor], true
}

// Prev moves the cursor back, wrapping before the start.
func (m *Model) Prev() (domain.RankedTask, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.alerts) == 0 {
		return domain.RankedTask{}, false
	}
	m.cursor = (m.cursor - 1 + len(m.alerts)) % len(m.alerts)
	return m.alerts[m.cursor], true
}

// SetCursor positions the cursor directly. Out-of-range input clamps to 0.
func (m *Model) SetCursor(index int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= len(m.alerts) {
		m.cursor = 0
		return
	}
	m.cursor = index
}
