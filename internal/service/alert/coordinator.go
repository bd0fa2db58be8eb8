package alert

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/domain"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/infra/tasksource"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/observability/metrics"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/observability/tracing"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/candidate"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/dispatch"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/gate"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/present"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/rank"
)

// Coordinator runs deadline evaluation cycles: fetch, filter, rank,
// presentation update, gate check, dispatch. Every step in a cycle reads
// the same "now" snapshot. A newer trigger supersedes an in-flight cycle:
// the older fetch is cancelled and its results are discarded, never
// dispatched.
type Coordinator struct {
	source     tasksource.TaskSource
	filter     *candidate.Filter
	ranker     *rank.Ranker
	dispatcher *dispatch.Dispatcher
	model      *present.Model
	recorder   domain.DeliveryResultRecorder
	metrics    *metrics.AlertMetrics

	panelGate    *gate.Gate
	deadlineGate *gate.Gate

	fetchTimeout time.Duration
	panelLimit   int
	now          func() time.Time

	generation atomic.Uint64

	mu          sync.Mutex
	cancelFetch context.CancelFunc
	sessionID   string
	userID      string
}

// Config wires the coordinator's collaborators and tunables.
type Config struct {
	Source     tasksource.TaskSource
	Filter     *candidate.Filter
	Ranker     *rank.Ranker
	Dispatcher *dispatch.Dispatcher
	Model      *present.Model
	Recorder   domain.DeliveryResultRecorder
	Metrics    *metrics.AlertMetrics

	PanelGate    *gate.Gate
	DeadlineGate *gate.Gate

	FetchTimeout time.Duration
	PanelLimit   int

	// Now overrides the clock in tests.
	Now func() time.Time
}

func NewCoordinator(cfg Config) *Coordinator {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	fetchTimeout := cfg.FetchTimeout
	if fetchTimeout <= 0 {
		fetchTimeout = 10 * time.Second
	}

	return &Coordinator{
		source:       cfg.Source,
		filter:       cfg.Filter,
		ranker:       cfg.Ranker,
		dispatcher:   cfg.Dispatcher,
		model:        cfg.Model,
		recorder:     cfg.Recorder,
		metrics:      cfg.Metrics,
		panelGate:    cfg.PanelGate,
		deadlineGate: cfg.DeadlineGate,
		fetchTimeout: fetchTimeout,
		panelLimit:   cfg.PanelLimit,
		now:          now,
		// A process-scoped session until the first login event arrives.
		sessionID: uuid.NewString(),
	}
}

// SetSession records the identity of the active session. The gates compare
// it on the next emission; a changed identity forces a fresh allow.
func (c *Coordinator) SetSession(sessionID, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionID = sessionID
	c.userID = userID
}

func (c *Coordinator) session() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID, c.userID
}

// RunCycle executes one evaluation cycle. It never fails the caller: fetch
// errors produce an empty cycle and a superseded cycle returns with Stale
// set.
func (c *Coordinator) RunCycle(ctx context.Context, surface Surface, trigger Trigger) *CycleResult {
	generation := c.generation.Add(1)
	cycleStart := c.now()

	ctx, span := tracing.StartEvaluationCycleSpan(ctx, string(surface), string(trigger), generation)
	defer span.End()

	result := &CycleResult{
		RunID:      uuid.NewString(),
		Surface:    surface,
		Trigger:    trigger,
		Generation: generation,
		CycleTime:  cycleStart,
	}

	windowDays := candidate.WindowUpcoming
	surfaceGate := c.panelGate
	limit := c.panelLimit
	if surface == SurfaceDeadline {
		windowDays = candidate.WindowDeadlineAlert
		surfaceGate = c.deadlineGate
		limit = 0
	}

	tasks := c.fetch(ctx, generation, windowDays, result)
	if c.stale(generation) {
		return c.finishStale(ctx, result)
	}

	candidates := c.filter.Select(tasks, cycleStart, windowDays)
	ranked := c.ranker.Rank(candidates, cycleStart, limit)
	result.CandidateCount = len(candidates)
	result.RankedCount = len(ranked)

	if c.metrics != nil {
		c.metrics.RecordCandidateCount(ctx, string(surface), len(candidates))
		for _, task := range ranked {
			c.metrics.RecordTier(ctx, string(task.Tier))
		}
	}

	if c.stale(generation) {
		return c.finishStale(ctx, result)
	}

	c.model.Update(ranked)

	if len(ranked) > 0 {
		c.emit(ctx, surfaceGate, ranked, cycleStart, result)
	}

	c.record(ctx, result)
	c.finish(ctx, span, result, cycleStart)

	return result
}

// fetch retrieves tasks under the cycle's fetch timeout, registering the
// cancel func so a newer trigger can abort it. Any failure yields zero
// tasks for this cycle.
func (c *Coordinator) fetch(ctx context.Context, generation uint64, windowDays int, result *CycleResult) []domain.TaskDeadline {
	fetchCtx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	c.mu.Lock()
	if c.cancelFetch != nil {
		c.cancelFetch()
	}
	c.cancelFetch = cancel
	c.mu.Unlock()

	fetchCtx, span := tracing.StartTaskFetchSpan(fetchCtx, windowDays)
	defer span.End()

	start := time.Now()
	tasks, err := c.source.FetchUpcomingTasks(fetchCtx, windowDays)
	result.FetchDuration = time.Since(start)
	result.FetchErr = err

	tracing.RecordTaskFetchResult(span, len(tasks), result.FetchDuration, err)

	outcome := "success"
	if err != nil {
		outcome = "error"
		slog.WarnContext(ctx, "task fetch failed, treating cycle as empty",
			slog.String("run_id", result.RunID),
			slog.Uint64("generation", generation),
			slog.Duration("elapsed", result.FetchDuration),
			slog.String("error", err.Error()),
		)
		tasks = nil
	}

	if c.metrics != nil {
		c.metrics.RecordFetchDuration(ctx, outcome, result.FetchDuration)
	}

	return tasks
}

func (c *Coordinator) stale(generation uint64) bool {
	return c.generation.Load() != generation
}

func (c *Coordinator) finishStale(ctx context.Context, result *CycleResult) *CycleResult {
	result.Stale = true
	slog.InfoContext(ctx, "cycle superseded by newer trigger, discarding results",
		slog.String("run_id", result.RunID),
		slog.Uint64("generation", result.Generation),
	)
	return result
}

func (c *Coordinator) emit(ctx context.Context, surfaceGate *gate.Gate, ranked []domain.RankedTask, now time.Time, result *CycleResult) {
	sessionID, userID := c.session()

	gateCtx, gateSpan := tracing.StartGateCheckSpan(ctx, string(result.Surface), sessionID)
	decision, err := surfaceGate.CheckAndMaybeEmit(gateCtx, sessionID, userID, now)
	tracing.RecordGateDecision(gateSpan, decision.String(), err)
	gateSpan.End()
	if err != nil {
		slog.WarnContext(ctx, "gate store error during cycle",
			slog.String("run_id", result.RunID),
			slog.String("error", err.Error()),
		)
	}
	if c.metrics != nil {
		c.metrics.RecordGateDecision(ctx, string(result.Surface), decision.String())
	}

	if decision == gate.DecisionSuppress {
		result.Suppressed = true
		slog.DebugContext(ctx, "emission suppressed by deduplication gate",
			slog.String("run_id", result.RunID),
			slog.String("surface", string(result.Surface)),
		)
		return
	}

	payloads := dispatch.RenderPayloads(ranked)
	result.Results = c.dispatcher.DispatchAll(ctx, string(result.Surface), payloads)

	for _, r := range result.Results {
		switch r.Outcome {
		case domain.OutcomeDeliveredNative:
			result.NativeCount++
		case domain.OutcomeDeliveredFallback:
			result.FallbackCount++
		case domain.OutcomeSkipped:
			result.SkippedCount++
		}
	}
}

// record hands the cycle's outcomes to the analytics recorder. Recording
// is diagnostic only; failures are logged and dropped.
func (c *Coordinator) record(ctx context.Context, result *CycleResult) {
	if c.recorder == nil {
		return
	}

	dispatchRecords := make([]domain.DispatchResultRecord, 0, len(result.Results))
	for _, r := range result.Results {
		dispatchRecords = append(dispatchRecords, domain.DispatchResultRecord{
			RunID:      result.RunID,
			CycleTime:  result.CycleTime,
			Surface:    string(result.Surface),
			TaskID:     r.TaskID,
			Tier:       string(r.Tier),
			Outcome:    r.Outcome.String(),
			Suppressed: false,
		})
	}

	if err := c.recorder.RecordDispatchResults(ctx, dispatchRecords); err != nil {
		slog.WarnContext(ctx, "failed to record dispatch results",
			slog.String("run_id", result.RunID),
			slog.String("error", err.Error()),
		)
	}

	summary := domain.CycleSummaryRecord{
		RunID:          result.RunID,
		CycleTime:      result.CycleTime,
		Surface:        string(result.Surface),
		Trigger:        string(result.Trigger),
		CandidateCount: result.CandidateCount,
		NativeCount:    result.NativeCount,
		FallbackCount:  result.FallbackCount,
		SkippedCount:   result.SkippedCount,
		FetchMillis:    result.FetchDuration.Milliseconds(),
	}
	if result.Suppressed {
		summary.SuppressedCount = result.RankedCount
	}

	if err := c.recorder.RecordCycleSummary(ctx, summary); err != nil {
		slog.WarnContext(ctx, "failed to record cycle summary",
			slog.String("run_id", result.RunID),
			slog.String("error", err.Error()),
		)
	}
}

func (c *Coordinator) finish(ctx context.Context, span trace.Span, result *CycleResult, cycleStart time.Time) {
	if c.metrics != nil {
		c.metrics.RecordCycle(ctx, string(result.Surface), string(result.Trigger))
		c.metrics.RecordCycleDuration(ctx, string(result.Surface), time.Since(cycleStart))
	}

	delivered := result.NativeCount + result.FallbackCount
	tracing.RecordEvaluationCycleResult(span, result.CandidateCount, delivered, result.SkippedCount, result.Suppressed, result.FetchErr)

	slog.InfoContext(ctx, "evaluation cycle completed",
		slog.String("run_id", result.RunID),
		slog.String("surface", string(result.Surface)),
		slog.String("trigger", string(result.Trigger)),
		slog.Int("candidates", result.CandidateCount),
		slog.Int("ranked", result.RankedCount),
		slog.Int("native", result.NativeCount),
		slog.Int("fallback", result.FallbackCount),
		slog.Int("skipped", result.SkippedCount),
		slog.Bool("suppressed", result.Suppressed),
	)
}
