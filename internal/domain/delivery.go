package domain

import (
	"time"
)

// DeliveryOutcome reports how an alert was ultimately delivered.
type DeliveryOutcome string

const (
	// OutcomeDeliveredNative means the alert was handed to the background
	// push channel.
	OutcomeDeliveredNative DeliveryOutcome = "delivered-native"
	// OutcomeDeliveredFallback means no push channel was usable and the
	// alert is visible only on the in-app surface. This is a degraded but
	// successful delivery, not a failure.
	OutcomeDeliveredFallback DeliveryOutcome = "delivered-fallback"
	// OutcomeSkipped means a capability gap (insecure context, permission
	// not granted) prevented any dispatch attempt.
	OutcomeSkipped DeliveryOutcome = "skipped"
)

func (o DeliveryOutcome) String() string {
	return string(o)
}

// AlertPayload is a rendered alert handed to the dispatcher. Tag is derived
// from the task ID so OS-level surfaces replace rather than stack repeat
// alerts for the same task.
type AlertPayload struct {
	TaskID             string
	Title              string
	Body               string
	Tag                string
	Tier               UrgencyTier
	RequireInteraction bool
	Vibrate            []int
	Data               map[string]string
}

// DeliveryRecord gates repeat emission for one session+user. It exists only
// for dedup; it never models task state. The record is overwritten on each
// re-emission and discarded whenever the gate store's lifetime ends.
type DeliveryRecord struct {
	SessionID  string
	UserID     string
	LastSentAt time.Time
}

func NewDeliveryRecord(sessionID, userID string, sentAt time.Time) *DeliveryRecord {
	return &DeliveryRecord{
		SessionID:  sessionID,
		UserID:     userID,
		LastSentAt: sentAt,
	}
}

// Matches reports whether the record belongs to the given session identity.
func (r *DeliveryRecord) Matches(sessionID, userID string) bool {
	return r.SessionID == sessionID && r.UserID == userID
}
