package urgency

import (
	"testing"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/domain"
)

func TestClassifier_Classify(t *testing.T) {
	classifier := NewClassifier()

	tests := []struct {
		name          string
		daysRemaining int
		wantTier      domain.UrgencyTier
	}{
		{
			name:          "far overdue should be Overdue",
			daysRemaining: -30,
			wantTier:      domain.TierOverdue,
		},
		{
			name:          "one day overdue should be Overdue",
			daysRemaining: -1,
			wantTier:      domain.TierOverdue,
		},
		{
			name:          "due today should be Critical",
			daysRemaining: 0,
			wantTier:      domain.TierCritical,
		},
		{
			name:          "due tomorrow should be Urgent",
			daysRemaining: 1,
			wantTier:      domain.TierUrgent,
		},
		{
			name:          "two days left should be Warning",
			daysRemaining: 2,
			wantTier:      domain.TierWarning,
		},
		{
			name:          "three days left (threshold) should be Warning",
			daysRemaining: 3,
			wantTier:      domain.TierWarning,
		},
		{
			name:          "four days left should be Normal",
			daysRemaining: 4,
			wantTier:      domain.TierNormal,
		},
		{
			name:          "fourteen days left should be Normal",
			daysRemaining: 14,
			wantTier:      domain.TierNormal,
		},
		{
			name:          "no due date sentinel should be Normal",
			daysRemaining: domain.NoDueDateSortKey,
			wantTier:      domain.TierNormal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(tt.daysRemaining)

			if got != tt.wantTier {
				t.Errorf("Classify(%d) = %v, want %v", tt.daysRemaining, got, tt.wantTier)
			}
		})
	}
}

func TestClassifier_Label(t *testing.T) {
	classifier := NewClassifier()

	tests := []struct {
		name          string
		daysRemaining int
		want          string
	}{
		// "1 days overdue" is the deliberate phrasing: the overdue label
		// does not pluralize.
		{name: "one day overdue", daysRemaining: -1, want: "1 days overdue"},
		{name: "five days overdue", daysRemaining: -5, want: "5 days overdue"},
		{name: "due today", daysRemaining: 0, want: "Due today"},
		{name: "due tomorrow", daysRemaining: 1, want: "Due tomorrow"},
		{name: "two days left", daysRemaining: 2, want: "2 days left"},
		{name: "ten days left", daysRemaining: 10, want: "10 days left"},
		{name: "no due date", daysRemaining: domain.NoDueDateSortKey, want: "No due date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Label(tt.daysRemaining)

			if got != tt.want {
				t.Errorf("Label(%d) = %q, want %q", tt.daysRemaining, got, tt.want)
			}
		})
	}
}

func TestClassifier_Score(t *testing.T) {
	classifier := NewClassifier()

	tests := []struct {
		name          string
		daysRemaining int
		priority      domain.Priority
		want          int
	}{
		{name: "overdue outranks everything", daysRemaining: -1, priority: domain.PriorityLow, want: 100},
		{name: "overdue magnitude does not matter", daysRemaining: -90, priority: domain.PriorityLow, want: 100},
		{name: "due today overrides priority", daysRemaining: 0, priority: domain.PriorityHigh, want: 90},
		{name: "due tomorrow overrides priority", daysRemaining: 1, priority: domain.PriorityMedium, want: 80},
		{name: "two days out falls back to high priority", daysRemaining: 2, priority: domain.PriorityHigh, want: 70},
		{name: "medium priority", daysRemaining: 5, priority: domain.PriorityMedium, want: 50},
		{name: "low priority", daysRemaining: 5, priority: domain.PriorityLow, want: 30},
		{name: "unknown priority treated as low", daysRemaining: 5, priority: domain.Priority(""), want: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Score(tt.daysRemaining, tt.priority)

			if got != tt.want {
				t.Errorf("Score(%d, %q) = %d, want %d", tt.daysRemaining, tt.priority, got, tt.want)
			}
		})
	}
}

// TestClassifier_ScoreMonotonicity verifies that a closer deadline never
// scores below a farther one for the same priority.
func TestClassifier_ScoreMonotonicity(t *testing.T) {
	classifier := NewClassifier()

	for _, priority := range []domain.Priority{domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow} {
		prev := classifier.Score(0, priority)
		for d := 1; d <= 30; d++ {
			cur := classifier.Score(d, priority)
			if cur > prev {
				t.Errorf("score increased with distance: Score(%d, %q)=%d > Score(%d, %q)=%d",
					d, priority, cur, d-1, priority, prev)
			}
			prev = cur
		}
	}

	for d := -1; d >= -365; d-- {
		if got := classifier.Score(d, domain.PriorityLow); got != ScoreOverdue {
			t.Fatalf("Score(%d) = %d, want %d for any overdue task", d, got, ScoreOverdue)
		}
	}
}
