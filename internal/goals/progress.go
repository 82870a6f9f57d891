package goals

import (
	"math"
	"time"
)

// sentinelMonths is reported when no contribution rate can be derived, so a
// projection exists but is obviously far out.
const sentinelMonths = 999

// recentWindow is how many of the latest contributions feed the projection.
const recentWindow = 6

// ComputeProgress derives all pacing figures for a goal from its stored state
// and contribution history (newest first).
func ComputeProgress(g Goal, history []Contribution, now time.Time) Progress {
	progressPct := 0.0
	if g.TargetAmount > 0 {
		progressPct = g.CurrentAmount / g.TargetAmount * 100
	}

	remaining := g.TargetAmount - g.CurrentAmount

	monthsRemaining := 0
	if days := g.TargetDate.Sub(now).Hours() / 24; days > 0 {
		monthsRemaining = int(math.Ceil(days / 30))
	}

	required := 0.0
	if monthsRemaining > 0 {
		required = remaining / float64(monthsRemaining)
	}

	// Expected progress is linear in elapsed time between creation and the
	// target date; past the target date it is defined as 100.
	expected := 100.0
	if monthsRemaining > 0 {
		total := g.TargetDate.Sub(g.CreatedAt)
		if total > 0 {
			expected = now.Sub(g.CreatedAt).Seconds() / total.Seconds() * 100
		}
	}
	onTrack := progressPct >= expected*0.9

	// Projection from the average of the most recent contributions, falling
	// back to the configured monthly contribution with no history.
	avg := g.MonthlyContribution
	if len(history) > 0 {
		n := len(history)
		if n > recentWindow {
			n = recentWindow
		}
		sum := 0.0
		for _, c := range history[:n] {
			sum += c.Amount
		}
		avg = sum / float64(n)
	}

	monthsToCompletion := sentinelMonths
	if avg > 0 {
		monthsToCompletion = int(math.Ceil(remaining / avg))
		if monthsToCompletion < 0 {
			monthsToCompletion = 0
		}
	}

	return Progress{
		GoalID:                      g.ID,
		ProgressPercentage:          math.Min(100, progressPct),
		RemainingAmount:             remaining,
		MonthsRemaining:             monthsRemaining,
		OnTrack:                     onTrack,
		ProjectedCompletionDate:     now.AddDate(0, monthsToCompletion, 0),
		RequiredMonthlyContribution: required,
		ContributionHistory:         history,
	}
}
