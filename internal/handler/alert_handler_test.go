package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/domain"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/infra/gatestore"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/infra/tasksource"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/alert"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/candidate"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/dispatch"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/gate"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/present"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/rank"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/urgency"
)

func testRouter(t *testing.T, tasks []domain.TaskDeadline) (*gin.Engine, *present.Model) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	source := tasksource.NewMockTaskSource(ctrl)
	source.EXPECT().
		FetchUpcomingTasks(gomock.Any(), gomock.Any()).
		Return(tasks, nil).
		AnyTimes()

	model := present.NewModel()
	coordinator := alert.NewCoordinator(alert.Config{
		Source: source,
		Filter: candidate.NewFilter(),
		Ranker: rank.NewRanker(urgency.NewClassifier()),
		Dispatcher: dispatch.NewDispatcher(nil, dispatch.Config{
			PushPermission: "granted",
			Origin:         "https://dashboard.example.com",
		}, nil),
		Model:        model,
		PanelGate:    gate.New(gatestore.NewMemoryStore(), 30*time.Minute),
		DeadlineGate: gate.New(gatestore.NewMemoryStore(), 5*time.Minute),
		PanelLimit:   6,
	})

	alertHandler := NewAlertHandler(coordinator, model)
	sessionHandler := NewSessionHandler(coordinator)

	r := gin.New()
	v1 := r.Group("/api/v1")
	{
		v1.POST("/alerts/check", alertHandler.HandleCheck)
		v1.GET("/alerts", alertHandler.HandleList)
		v1.GET("/alerts/current", alertHandler.HandleCurrent)
		v1.POST("/alerts/cursor/next", alertHandler.HandleCursorNext)
		v1.POST("/alerts/cursor/prev", alertHandler.HandleCursorPrev)
		v1.PUT("/alerts/cursor", alertHandler.HandleSetCursor)
		v1.POST("/session", sessionHandler.HandleSession)
	}
	return r, model
}

func upcomingTasks() []domain.TaskDeadline {
	base := time.Now()
	return []domain.TaskDeadline{
		{ID: "t1", Title: "Pour foundation", EndDate: base, Status: domain.StatusPending, Priority: domain.PriorityHigh},
		{ID: "t2", Title: "Order rebar", EndDate: base.AddDate(0, 0, 2), Status: domain.StatusPending, Priority: domain.PriorityMedium},
	}
}

func TestHandleCheck_InvalidSurface(t *testing.T) {
	r, _ := testRouter(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/check?surface=bogus", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandleCheck_RunsCycle(t *testing.T) {
	r, model := testRouter(t, upcomingTasks())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/check?surface=panel", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp["candidate_count"].(float64) != 2 {
		t.Errorf("candidate_count = %v, want 2", resp["candidate_count"])
	}
	if model.Len() != 2 {
		t.Errorf("model holds %d alerts after check, want 2", model.Len())
	}
}

func TestHandleList_Limit(t *testing.T) {
	r, model := testRouter(t, nil)
	model.Update([]domain.RankedTask{
		{Task: domain.TaskDeadline{ID: "a"}},
		{Task: domain.TaskDeadline{ID: "b"}},
		{Task: domain.TaskDeadline{ID: "c"}},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts?limit=2", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Alerts []domain.RankedTask `json:"alerts"`
		Total  int                 `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(resp.Alerts) != 2 {
		t.Errorf("got %d alerts, want 2", len(resp.Alerts))
	}
	if resp.Total != 3 {
		t.Errorf("total = %d, want 3", resp.Total)
	}
}

func TestHandleList_ZeroLimitIsUnbounded(t *testing.T) {
	r, model := testRouter(t, nil)
	model.Update([]domain.RankedTask{
		{Task: domain.TaskDeadline{ID: "a"}},
		{Task: domain.TaskDeadline{ID: "b"}},
		{Task: domain.TaskDeadline{ID: "c"}},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts?limit=0", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Alerts []domain.RankedTask `json:"alerts"`
		Total  int                 `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(resp.Alerts) != 3 {
		t.Errorf("got %d alerts, want 3", len(resp.Alerts))
	}
}

func TestCursorEndpoints_Wrap(t *testing.T) {
	r, model := testRouter(t, nil)
	model.Update([]domain.RankedTask{
		{Task: domain.TaskDeadline{ID: "a"}},
		{Task: domain.TaskDeadline{ID: "b"}},
	})

	next := func() (string, int) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/cursor/next", nil)
		r.ServeHTTP(w, req)

		var resp struct {
			Alert  *domain.RankedTask `json:"alert"`
			Cursor int                `json:"cursor"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response JSON: %v", err)
		}
		return resp.Alert.Task.ID, resp.Cursor
	}

	if id, cursor := next(); id != "b" || cursor != 1 {
		t.Errorf("first next = (%s, %d), want (b, 1)", id, cursor)
	}
	if id, cursor := next(); id != "a" || cursor != 0 {
		t.Errorf("wrapping next = (%s, %d), want (a, 0)", id, cursor)
	}
}

func TestHandleSetCursor_ClampsOutOfRange(t *testing.T) {
	r, model := testRouter(t, nil)
	model.Update([]domain.RankedTask{
		{Task: domain.TaskDeadline{ID: "a"}},
		{Task: domain.TaskDeadline{ID: "b"}},
	})

	body, _ := json.Marshal(map[string]int{"index": 9})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/alerts/cursor", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if model.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0 after out-of-range set", model.Cursor())
	}
}

func TestHandleSession(t *testing.T) {
	r, _ := testRouter(t, upcomingTasks())

	t.Run("missing user_id", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"session_id": "s-1"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/session", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("login triggers cycle", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"user_id": "user-x"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/session", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
		}

		var resp struct {
			SessionID string `json:"session_id"`
			Cycle     struct {
				Trigger     string `json:"trigger"`
				RankedCount int    `json:"ranked_count"`
			} `json:"cycle"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response JSON: %v", err)
		}
		if resp.SessionID == "" {
			t.Error("expected generated session_id")
		}
		if resp.Cycle.Trigger != "login" {
			t.Errorf("trigger = %q, want login", resp.Cycle.Trigger)
		}
		if resp.Cycle.RankedCount != 2 {
			t.Errorf("ranked_count = %d, want 2", resp.Cycle.RankedCount)
		}
	})
}
