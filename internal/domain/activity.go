package domain

import "time"

// ActivityType enumerates recorded feature events.
type ActivityType string

const (
	ActivityPlagiarism ActivityType = "plagiarism"
	ActivityHumanizer  ActivityType = "humanizer"
	ActivityBulk       ActivityType = "bulk"
)

// Activity is one locally recorded feature event. It feeds the history view,
// the offline stats summary and the report export.
type Activity struct {
	ID        string       `json:"id"`
	Type      ActivityType `json:"type"`
	Title     string       `json:"title"`
	Score     float64      `json:"score"`
	WordCount int          `json:"word_count,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// Status buckets a similarity score the way the dashboard renders it.
func (a Activity) Status() string {
	if a.Type != ActivityPlagiarism {
		return "safe"
	}
	return RiskLevel(a.Score)
}

// RiskLevel buckets a similarity score: under 30 is safe, under 70 moderate,
// everything else high.
func RiskLevel(score float64) string {
	switch {
	case score < 30:
		return "safe"
	case score < 70:
		return "moderate"
	}
	return "high"
}

// UsagePoint is one day of the weekly usage chart.
type UsagePoint struct {
	Name       string  `json:"name"`
	Checks     int     `json:"checks"`
	Similarity float64 `json:"similarity"`
	Date       string  `json:"date"`
}

// StatsSummary is the dashboard summary. It is normally fetched from the
// backend; when the backend is unreachable a local fallback is derived from
// the recorded activity.
type StatsSummary struct {
	TotalChecks    int          `json:"total_checks"`
	AvgSimilarity  float64      `json:"avg_similarity"`
	HighRiskCount  int          `json:"high_risk_count"`
	RemainingQuota int          `json:"remaining_quota"`
	UsageChart     []UsagePoint `json:"usage_chart"`
	RecentActivity []Activity   `json:"recent_activity"`
	UserName       string       `json:"user_name"`
}
