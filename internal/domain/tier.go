package domain

// UrgencyTier represents the discrete urgency classification of a task
// deadline for alerting purposes.
type UrgencyTier string

const (
	TierOverdue  UrgencyTier = "overdue"
	TierCritical UrgencyTier = "critical"
	TierUrgent   UrgencyTier = "urgent"
	TierWarning  UrgencyTier = "warning"
	TierNormal   UrgencyTier = "normal"
)

func (t UrgencyTier) String() string {
	return string(t)
}

func (t UrgencyTier) IsOverdue() bool {
	return t == TierOverdue
}

// IsHighUrgency reports whether the tier warrants an interaction-requiring
// notification with a vibration hint.
func (t UrgencyTier) IsHighUrgency() bool {
	return t == TierOverdue || t == TierCritical
}
