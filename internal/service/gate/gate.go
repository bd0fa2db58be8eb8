package gate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/domain"
)

// Decision is the outcome of a gate check.
type Decision string

const (
	DecisionAllow    Decision = "allow"
	DecisionSuppress Decision = "suppress"
)

func (d Decision) String() string {
	return string(d)
}

// Gate prevents re-alerting the same session+user more often than its
// cooldown. State transitions: no record means Idle and the check emits;
// a matching record within cooldown suppresses; a matching record past
// cooldown is overwritten and emits again; an identity mismatch resets
// tracking immediately regardless of cooldown.
type Gate struct {
	store    domain.GateStore
	cooldown time.Duration
}

func New(store domain.GateStore, cooldown time.Duration) *Gate {
	return &Gate{
		store:    store,
		cooldown: cooldown,
	}
}

func (g *Gate) Cooldown() time.Duration {
	return g.cooldown
}

// CheckAndMaybeEmit decides whether an emission for (sessionID, userID) at
// now is allowed, recording it when it is. Store failures fail open: a
// degraded store must not silence alerts, so the check allows and reports
// the error for diagnostics.
func (g *Gate) CheckAndMaybeEmit(ctx context.Context, sessionID, userID string, now time.Time) (Decision, error) {
	record, err := g.store.Get(ctx)
	if err != nil && !errors.Is(err, domain.ErrDeliveryRecordNotFound) {
		slog.WarnContext(ctx, "gate store read failed, allowing emission",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
		return DecisionAllow, err
	}

	if record != nil && record.Matches(sessionID, userID) {
		if now.Sub(record.LastSentAt) < g.cooldown {
			return DecisionSuppress, nil
		}
		// Cooldown elapsed: back to Idle for emission purposes, record is
		// overwritten below rather than deleted.
	} else if record != nil {
		// New login or session: forced invalidation, not a timeout.
		if err := g.store.Reset(ctx); err != nil {
			slog.WarnContext(ctx, "gate store reset failed",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()),
			)
		}
	}

	if err := g.store.Put(ctx, domain.NewDeliveryRecord(sessionID, userID, now)); err != nil {
		slog.WarnContext(ctx, "gate store write failed",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
		return DecisionAllow, err
	}

	return DecisionAllow, nil
}

// Invalidate drops the gate's record unconditionally. Used when the host
// application signals an explicit session change outside a check.
func (g *Gate) Invalidate(ctx context.Context) error {
	return g.store.Reset(ctx)
}
