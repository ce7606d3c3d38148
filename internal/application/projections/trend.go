package projections

import (
	"sort"
	"time"

	"coachdesk/internal/domain/session"
)

// TrendPoint is one month on the completed-sessions trend line.
type TrendPoint struct {
	Month string // YYYY-MM
	Label string // e.g. "Oct 2023"
	Count int
}

// MonthlyCompletedTrend buckets completed sessions by calendar year-month
// of the session date, sorted chronologically. No-shows never count, even
// when the blank-status/past-date rule would otherwise complete them;
// the shared classifier already gives no-show precedence.
// PRE: now is the classification instant
// POST: One point per month that has at least one completed session
func MonthlyCompletedTrend(sessions []session.Session, now time.Time) []TrendPoint {
	counts := make(map[string]int)
	for _, s := range sessions {
		if s.Date.IsZero() {
			continue
		}
		if s.Bucket(now) != session.StatusCompleted {
			continue
		}
		counts[s.Date.Format("2006-01")]++
	}

	points := make([]TrendPoint, 0, len(counts))
	for month, count := range counts {
		t, _ := time.Parse("2006-01", month)
		points = append(points, TrendPoint{
			Month: month,
			Label: t.Format("Jan 2006"),
			Count: count,
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Month < points[j].Month })
	return points
}
