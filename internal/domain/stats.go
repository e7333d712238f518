package domain

import (
	"math"
	"sort"
	"time"
)

// DeriveStats builds a dashboard summary from locally recorded state, used
// when the backend cannot be reached. Numbers cover only what this device
// recorded.
func DeriveStats(user *StoredUser, limits UsageLimits, activities []Activity, now time.Time) StatsSummary {
	var checks []Activity
	for _, a := range activities {
		if a.Type == ActivityPlagiarism {
			checks = append(checks, a)
		}
	}

	var totalScore float64
	highRisk := 0
	for _, c := range checks {
		totalScore += c.Score
		if c.Score > 70 {
			highRisk++
		}
	}
	avg := 0.0
	if len(checks) > 0 {
		avg = round1(totalScore / float64(len(checks)))
	}

	return StatsSummary{
		TotalChecks:    len(checks),
		AvgSimilarity:  avg,
		HighRiskCount:  highRisk,
		RemainingQuota: CeilingPlagiarism - limits.Plagiarism,
		UsageChart:     weeklyChart(checks, now),
		RecentActivity: recentActivities(activities, 5),
		UserName:       user.DisplayName(),
	}
}

// weeklyChart buckets the last seven days of checks, oldest first.
func weeklyChart(checks []Activity, now time.Time) []UsagePoint {
	points := make([]UsagePoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		dayStr := day.Format("2006-01-02")
		count := 0
		var score float64
		for _, c := range checks {
			if c.Timestamp.Format("2006-01-02") == dayStr {
				count++
				score += c.Score
			}
		}
		avg := 0.0
		if count > 0 {
			avg = round1(score / float64(count))
		}
		points = append(points, UsagePoint{
			Name:       day.Format("Mon"),
			Checks:     count,
			Similarity: avg,
			Date:       dayStr,
		})
	}
	return points
}

func recentActivities(items []Activity, n int) []Activity {
	sorted := append([]Activity(nil), items...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	if sorted == nil {
		sorted = []Activity{}
	}
	return sorted
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
