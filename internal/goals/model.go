package goals

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusPaused    Status = "paused"
	StatusCancelled Status = "cancelled"
)

type Goal struct {
	ID                  string    `db:"id" json:"id"`
	UserID              string    `db:"user_id" json:"user_id"`
	GoalName            string    `db:"goal_name" json:"goal_name"`
	TargetAmount        float64   `db:"target_amount" json:"target_amount"`
	CurrentAmount       float64   `db:"current_amount" json:"current_amount"`
	TargetDate          time.Time `db:"target_date" json:"target_date"`
	Category            string    `db:"category" json:"category"`
	Priority            string    `db:"priority" json:"priority"`
	MonthlyContribution float64   `db:"monthly_contribution" json:"monthly_contribution"`
	AutoContribute      bool      `db:"auto_contribute" json:"auto_contribute"`
	Status              Status    `db:"status" json:"status"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

type ContributionType string

const (
	ContribManual    ContributionType = "manual"
	ContribAutomatic ContributionType = "automatic"
	ContribBonus     ContributionType = "bonus"
)

// Contribution is an append-only increment toward a goal. The goal's
// current_amount is updated alongside the insert but the two writes are not
// one transaction; reconciliation is possible from this ledger.
type Contribution struct {
	ID     string           `db:"id" json:"id"`
	GoalID string           `db:"goal_id" json:"goal_id"`
	Amount float64          `db:"amount" json:"amount"`
	Date   time.Time        `db:"contribution_date" json:"date"`
	Type   ContributionType `db:"type" json:"type"`
	Note   *string          `db:"note" json:"note,omitempty"`
}

// Progress is computed fresh per query, never persisted.
type Progress struct {
	GoalID                      string         `json:"goal_id"`
	ProgressPercentage          float64        `json:"progress_percentage"` // clamped to [0,100]
	RemainingAmount             float64        `json:"remaining_amount"`    // may be negative
	MonthsRemaining             int            `json:"months_remaining"`
	OnTrack                     bool           `json:"on_track"`
	ProjectedCompletionDate     time.Time      `json:"projected_completion_date"`
	RequiredMonthlyContribution float64        `json:"required_monthly_contribution"`
	ContributionHistory         []Contribution `json:"contribution_history"`
}

type InsightType string

const (
	InsightOnTrack          InsightType = "on_track"
	InsightBehindSchedule   InsightType = "behind_schedule"
	InsightAdjustmentNeeded InsightType = "adjustment_needed"
)

type Insight struct {
	GoalID         string      `json:"goal_id"`
	Type           InsightType `json:"type"`
	Title          string      `json:"title"`
	Message        string      `json:"message"`
	Recommendation string      `json:"recommendation"`
	Impact         string      `json:"impact"` // positive | negative | neutral
}

type Summary struct {
	TotalGoals         int     `json:"total_goals"`
	ActiveGoals        int     `json:"active_goals"`
	CompletedGoals     int     `json:"completed_goals"`
	TotalTargetAmount  float64 `json:"total_target_amount"`
	TotalCurrentAmount float64 `json:"total_current_amount"`
	OverallProgress    float64 `json:"overall_progress"`
}

// NewGoal carries the client-supplied fields for goal creation.
type NewGoal struct {
	GoalName            string    `json:"goal_name"`
	TargetAmount        float64   `json:"target_amount"`
	CurrentAmount       float64   `json:"current_amount"`
	TargetDate          time.Time `json:"target_date"`
	Category            string    `json:"category"`
	Priority            string    `json:"priority"`
	MonthlyContribution float64   `json:"monthly_contribution"`
	AutoContribute      bool      `json:"auto_contribute"`
}
