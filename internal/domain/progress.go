// internal/domain/progress.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// XPPerLevel is how much total XP advances the student one level.
const XPPerLevel = 500

// DefaultDailyGoalXP is the daily XP target used until the student sets one.
const DefaultDailyGoalXP = 100

// ProgressState is the per-student XP/streak aggregate. The completion
// ledger stays the source of truth; this row is a cache that is repaired
// opportunistically on every progress read.
type ProgressState struct {
	StudentID         primitive.ObjectID `bson:"_id" json:"studentId"`
	TotalXP           int                `bson:"totalXp" json:"totalXp"`
	WorkoutsCompleted int                `bson:"workoutsCompleted" json:"workoutsCompleted"`
	TodayXP           int                `bson:"todayXp" json:"todayXp"`
	LastActivityDate  time.Time          `bson:"lastActivityDate,omitempty" json:"lastActivityDate,omitempty"`
	CurrentStreak     int                `bson:"currentStreak" json:"currentStreak"`
	LongestStreak     int                `bson:"longestStreak" json:"longestStreak"` // monotonically non-decreasing
	DailyGoalXP       int                `bson:"dailyGoalXp" json:"dailyGoalXp"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Derived on read, not persisted.
	Level       int    `bson:"-" json:"level"`
	XPToNext    int    `bson:"-" json:"xpToNextLevel"`
	WeeklyXP    [7]int `bson:"-" json:"weeklyXp"` // indexed by time.Weekday of the completion date
}

// DeriveLevel fills the computed level fields from TotalXP.
func (p *ProgressState) DeriveLevel() {
	p.Level = p.TotalXP/XPPerLevel + 1
	p.XPToNext = XPPerLevel - p.TotalXP%XPPerLevel
}
