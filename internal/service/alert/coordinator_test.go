package alert

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/domain"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/infra/gatestore"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/infra/pushqueue"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/candidate"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/dispatch"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/gate"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/present"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/rank"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/urgency"
)

// funcSource lets a test control fetch behavior per call.
type funcSource func(ctx context.Context, windowDays int) ([]domain.TaskDeadline, error)

func (f funcSource) FetchUpcomingTasks(ctx context.Context, windowDays int) ([]domain.TaskDeadline, error) {
	return f(ctx, windowDays)
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
}

func dueTask(id string, daysFromNow int) domain.TaskDeadline {
	return domain.TaskDeadline{
		ID:       id,
		Title:    "Task " + id,
		EndDate:  fixedNow().AddDate(0, 0, daysFromNow),
		Status:   domain.StatusPending,
		Priority: domain.PriorityMedium,
	}
}

func newTestCoordinator(t *testing.T, source funcSource, queue pushqueue.PushQueue) (*Coordinator, *present.Model) {
	t.Helper()

	model := present.NewModel()
	dispatcher := dispatch.NewDispatcher(queue, dispatch.Config{
		PushPermission: "granted",
		Origin:         "https://dashboard.example.com",
	}, nil)

	c := NewCoordinator(Config{
		Source:       source,
		Filter:       candidate.NewFilter(),
		Ranker:       rank.NewRanker(urgency.NewClassifier()),
		Dispatcher:   dispatcher,
		Model:        model,
		PanelGate:    gate.New(gatestore.NewMemoryStore(), 30*time.Minute),
		DeadlineGate: gate.New(gatestore.NewMemoryStore(), 5*time.Minute),
		FetchTimeout: 10 * time.Second,
		PanelLimit:   6,
		Now:          fixedNow,
	})
	c.SetSession("session-a", "user-x")
	return c, model
}

func TestCoordinator_FullCycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := pushqueue.NewMockPushQueue(ctrl)
	queue.EXPECT().
		EnqueueAlert(gomock.Any(), gomock.Any()).
		Return(&pushqueue.PushResponse{Name: "pushes/ok"}, nil).
		Times(2)

	source := funcSource(func(_ context.Context, windowDays int) ([]domain.TaskDeadline, error) {
		if windowDays != candidate.WindowUpcoming {
			t.Errorf("panel cycle fetched window %d, want %d", windowDays, candidate.WindowUpcoming)
		}
		return []domain.TaskDeadline{
			dueTask("t1", 0),
			dueTask("t2", 2),
			dueTask("t3", 20), // outside window, filtered out
		}, nil
	})

	c, model := newTestCoordinator(t, source, queue)
	result := c.RunCycle(context.Background(), SurfacePanel, TriggerManual)

	if result.Stale || result.Suppressed {
		t.Fatalf("unexpected stale=%v suppressed=%v", result.Stale, result.Suppressed)
	}
	if result.CandidateCount != 2 {
		t.Errorf("candidate count = %d, want 2", result.CandidateCount)
	}
	if result.NativeCount != 2 {
		t.Errorf("native count = %d, want 2", result.NativeCount)
	}
	if model.Len() != 2 {
		t.Errorf("presentation model holds %d alerts, want 2", model.Len())
	}
	if current, ok := model.Current(); !ok || current.Task.ID != "t1" {
		t.Errorf("top alert = %v, want t1 (due today ranks first)", current.Task.ID)
	}
}

func TestCoordinator_DeadlineSurfaceUsesNarrowWindow(t *testing.T) {
	var gotWindow int
	source := funcSource(func(_ context.Context, windowDays int) ([]domain.TaskDeadline, error) {
		gotWindow = windowDays
		return nil, nil
	})

	c, _ := newTestCoordinator(t, source, nil)
	c.RunCycle(context.Background(), SurfaceDeadline, TriggerPeriodic)

	if gotWindow != candidate.WindowDeadlineAlert {
		t.Errorf("deadline cycle fetched window %d, want %d", gotWindow, candidate.WindowDeadlineAlert)
	}
}

func TestCoordinator_FetchFailureYieldsEmptyCycle(t *testing.T) {
	source := funcSource(func(_ context.Context, _ int) ([]domain.TaskDeadline, error) {
		return nil, errors.New("project-tracking unavailable")
	})

	c, model := newTestCoordinator(t, source, nil)
	model.Update([]domain.RankedTask{{Task: domain.TaskDeadline{ID: "old"}}})

	result := c.RunCycle(context.Background(), SurfacePanel, TriggerManual)

	if result.FetchErr == nil {
		t.Error("expected fetch error to be reported")
	}
	if result.CandidateCount != 0 {
		t.Errorf("candidate count = %d, want 0", result.CandidateCount)
	}
	if len(result.Results) != 0 {
		t.Errorf("got %d dispatch results, want 0", len(result.Results))
	}
	// The empty cycle still replaces the snapshot: stale alerts must not
	// linger after the source says nothing is due.
	if model.Len() != 0 {
		t.Errorf("presentation model holds %d alerts, want 0", model.Len())
	}
}

func TestCoordinator_SecondCycleSuppressedWithinCooldown(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := pushqueue.NewMockPushQueue(ctrl)
	// Only the first cycle may dispatch.
	queue.EXPECT().
		EnqueueAlert(gomock.Any(), gomock.Any()).
		Return(&pushqueue.PushResponse{Name: "pushes/ok"}, nil).
		Times(1)

	source := funcSource(func(_ context.Context, _ int) ([]domain.TaskDeadline, error) {
		return []domain.TaskDeadline{dueTask("t1", 1)}, nil
	})

	c, _ := newTestCoordinator(t, source, queue)

	first := c.RunCycle(context.Background(), SurfacePanel, TriggerLogin)
	if first.Suppressed {
		t.Fatal("first cycle should not be suppressed")
	}

	second := c.RunCycle(context.Background(), SurfacePanel, TriggerManual)
	if !second.Suppressed {
		t.Error("second cycle within cooldown should be suppressed")
	}
	if len(second.Results) != 0 {
		t.Errorf("suppressed cycle produced %d dispatch results", len(second.Results))
	}
}

func TestCoordinator_SessionChangeAllowsReEmission(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := pushqueue.NewMockPushQueue(ctrl)
	queue.EXPECT().
		EnqueueAlert(gomock.Any(), gomock.Any()).
		Return(&pushqueue.PushResponse{Name: "pushes/ok"}, nil).
		Times(2)

	source := funcSource(func(_ context.Context, _ int) ([]domain.TaskDeadline, error) {
		return []domain.TaskDeadline{dueTask("t1", 1)}, nil
	})

	c, _ := newTestCoordinator(t, source, queue)

	if r := c.RunCycle(context.Background(), SurfacePanel, TriggerLogin); r.Suppressed {
		t.Fatal("first cycle should not be suppressed")
	}

	c.SetSession("session-b", "user-x")
	if r := c.RunCycle(context.Background(), SurfacePanel, TriggerLogin); r.Suppressed {
		t.Error("cycle after session change should not be suppressed")
	}
}

func TestCoordinator_EmptyRankedListSkipsGate(t *testing.T) {
	var calls int
	source := funcSource(func(_ context.Context, _ int) ([]domain.TaskDeadline, error) {
		calls++
		if calls == 1 {
			return nil, nil
		}
		return []domain.TaskDeadline{dueTask("t1", 1)}, nil
	})

	ctrl := gomock.NewController(t)
	queue := pushqueue.NewMockPushQueue(ctrl)
	queue.EXPECT().
		EnqueueAlert(gomock.Any(), gomock.Any()).
		Return(&pushqueue.PushResponse{Name: "pushes/ok"}, nil).
		Times(1)

	c, _ := newTestCoordinator(t, source, queue)

	// The empty first cycle must not consume the gate's allowance.
	if r := c.RunCycle(context.Background(), SurfacePanel, TriggerPeriodic); r.Suppressed {
		t.Fatal("empty cycle should not be suppressed")
	}
	if r := c.RunCycle(context.Background(), SurfacePanel, TriggerManual); r.Suppressed {
		t.Error("first non-empty cycle should be allowed")
	}
}

func TestCoordinator_SupersededCycleDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var calls int

	source := funcSource(func(_ context.Context, _ int) ([]domain.TaskDeadline, error) {
		calls++
		if calls == 1 {
			close(started)
			<-release
			return []domain.TaskDeadline{dueTask("stale", 1)}, nil
		}
		return []domain.TaskDeadline{dueTask("fresh", 1)}, nil
	})

	ctrl := gomock.NewController(t)
	queue := pushqueue.NewMockPushQueue(ctrl)
	// Only the fresh cycle dispatches; the superseded one is discarded.
	queue.EXPECT().
		EnqueueAlert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, task *pushqueue.AlertTask) (*pushqueue.PushResponse, error) {
			if task.Tag != "deadline-fresh" {
				t.Errorf("dispatched %q, want deadline-fresh", task.Tag)
			}
			return &pushqueue.PushResponse{Name: "pushes/ok"}, nil
		}).
		Times(1)

	c, model := newTestCoordinator(t, source, queue)

	staleResult := make(chan *CycleResult, 1)
	go func() {
		staleResult <- c.RunCycle(context.Background(), SurfacePanel, TriggerPeriodic)
	}()

	<-started
	fresh := c.RunCycle(context.Background(), SurfacePanel, TriggerLogin)
	close(release)

	stale := <-staleResult
	if !stale.Stale {
		t.Error("superseded cycle should report Stale")
	}
	if fresh.Stale {
		t.Error("newer cycle should not be stale")
	}
	if current, ok := model.Current(); !ok || current.Task.ID != "fresh" {
		t.Errorf("presentation model shows %v, want fresh", current.Task.ID)
	}
}

func TestRunCycle_TracesGateCheck(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	source := funcSource(func(ctx context.Context, windowDays int) ([]domain.TaskDeadline, error) {
		return []domain.TaskDeadline{dueTask("t1", 0)}, nil
	})
	coordinator, _ := newTestCoordinator(t, source, nil)

	coordinator.RunCycle(context.Background(), SurfacePanel, TriggerManual)

	var gateSpan sdktrace.ReadOnlySpan
	for _, span := range recorder.Ended() {
		if span.Name() == "alert.gate_check" {
			gateSpan = span
		}
	}
	if gateSpan == nil {
		t.Fatal("no alert.gate_check span recorded")
	}

	found := false
	for _, attr := range gateSpan.Attributes() {
		if string(attr.Key) == "gate.decision" && attr.Value.AsString() == "allow" {
			found = true
		}
	}
	if !found {
		t.Errorf("gate.decision attribute missing or wrong: %v", gateSpan.Attributes())
	}
}
