package models

// UserContext is derived from a user's recent history for one pipeline run.
// It is never persisted; every request recomputes it from the trailing window.
type UserContext struct {
	Streak     int     `json:"streak"`
	TotalLogs  int     `json:"total_logs"`
	AvgMood    float64 `json:"avg_mood"`
	HasContext bool    `json:"has_context"`
}

// UserProfile is the aggregate state the surrounding application maintains per
// user. The badge engine reads it; this core never writes it.
type UserProfile struct {
	UserID        string `bson:"userId" json:"user_id"`
	CurrentStreak int    `bson:"currentStreak" json:"current_streak"`
	LongestStreak int    `bson:"longestStreak" json:"longest_streak"`
	TotalLogs     int    `bson:"totalLogs" json:"total_logs"`
}
