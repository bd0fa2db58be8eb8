package alert

import (
	"time"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/dispatch"
)

// Surface names the alerting flow a cycle runs for. The two surfaces differ
// in candidate window, cooldown, and list truncation.
type Surface string

const (
	SurfacePanel    Surface = "panel"
	SurfaceDeadline Surface = "deadline"
)

func (s Surface) Valid() bool {
	return s == SurfacePanel || s == SurfaceDeadline
}

// Trigger names what started a cycle.
type Trigger string

const (
	TriggerLogin    Trigger = "login"
	TriggerPeriodic Trigger = "periodic"
	TriggerManual   Trigger = "manual"
)

// CycleResult summarizes one evaluation cycle.
type CycleResult struct {
	RunID      string
	Surface    Surface
	Trigger    Trigger
	Generation uint64
	CycleTime  time.Time

	// Stale is set when a newer trigger superseded this cycle; nothing was
	// dispatched and the presentation model was left untouched.
	Stale bool

	// Suppressed is set when the deduplication gate blocked emission.
	Suppressed bool

	FetchDuration  time.Duration
	FetchErr       error
	CandidateCount int
	RankedCount    int

	Results       []dispatch.Result
	NativeCount   int
	FallbackCount int
	SkippedCount  int
}
