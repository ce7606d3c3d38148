package projections

import (
	"fmt"
	"math"
)

// Summary carries the tile values shown above the sessions table. They
// are computed over the currently filtered view and recomputed on every
// filter change, never cached.
type Summary struct {
	EmployeeCount int
	SessionCount  int
	Completed     int
	NoShow        int
	Scheduled     int

	// AvgSessions is sessions per employee to one decimal place;
	// "0.0" when there are no employees.
	AvgSessions string

	// Utilization is completed sessions as a rounded percentage of total
	// sessions; 0 when there are no sessions.
	Utilization int
}

// ComputeSummary derives the tile statistics from a stat list.
// POST: Division by zero is impossible; empty input yields zeros and "0.0"
func ComputeSummary(stats []EmployeeStat) Summary {
	sum := Summary{EmployeeCount: len(stats), AvgSessions: "0.0"}
	for _, s := range stats {
		sum.SessionCount += s.Total
		sum.Completed += s.Completed
		sum.NoShow += s.NoShow
		sum.Scheduled += s.Scheduled
	}
	if sum.EmployeeCount > 0 {
		sum.AvgSessions = fmt.Sprintf("%.1f", float64(sum.SessionCount)/float64(sum.EmployeeCount))
	}
	if sum.SessionCount > 0 {
		sum.Utilization = int(math.Round(100 * float64(sum.Completed) / float64(sum.SessionCount)))
	}
	return sum
}
