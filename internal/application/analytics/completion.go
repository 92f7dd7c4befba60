package analytics

import (
	"sort"
	"strings"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/program"
)

// ══════════════════════════════════════════════════════════════════════════════
// COMPLETION / DROPOUT MODULE
// Completion and dropout rates over every enrollment, plus the dropout-reason
// histogram. All rates use the total enrollment count as denominator except
// histogram shares, which are of total dropped-out.
// ══════════════════════════════════════════════════════════════════════════════

// NotSpecifiedReason is the bucket for dropouts with a blank or missing
// reason. Grouping keys are never empty in output.
const NotSpecifiedReason = "Not specified"

// CompletionStats is the output of the completion/dropout module.
type CompletionStats struct {
	TotalEnrollments int `json:"total_enrollments"`
	Completed        int `json:"completed"`
	DroppedOut       int `json:"dropped_out"`

	// Active counts both ACTIVE and ENROLLED statuses.
	Active int `json:"active"`

	CompletionRate float64 `json:"completion_rate"`
	DropoutRate    float64 `json:"dropout_rate"`
	ActiveRate     float64 `json:"active_rate"`

	// DropoutReasons is the reason histogram, sorted descending by count.
	// Percentages are of total dropped-out, not of total enrollments.
	DropoutReasons []ReasonBucket `json:"dropout_reasons"`
}

// ReasonBucket is one bucket of the dropout-reason histogram.
type ReasonBucket struct {
	Reason     string  `json:"reason"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ComputeCompletionStats aggregates enrollment lifecycle outcomes.
// Empty input yields zero counts and rates, never an error.
func ComputeCompletionStats(snap *Snapshot) CompletionStats {
	stats := CompletionStats{TotalEnrollments: len(snap.Enrollments)}

	reasonCounts := make(map[string]int)
	for _, e := range snap.Enrollments {
		switch {
		case e.Status == program.EnrollmentStatusCompleted:
			stats.Completed++
		case e.Status == program.EnrollmentStatusDroppedOut:
			stats.DroppedOut++
			reasonCounts[normalizeReason(e.DropoutReason)]++
		case e.Status.IsOngoing():
			stats.Active++
		}
	}

	stats.CompletionRate = Percentage(stats.Completed, stats.TotalEnrollments)
	stats.DropoutRate = Percentage(stats.DroppedOut, stats.TotalEnrollments)
	stats.ActiveRate = Percentage(stats.Active, stats.TotalEnrollments)
	stats.DropoutReasons = reasonHistogram(reasonCounts, stats.DroppedOut)

	return stats
}

// normalizeReason merges blank and missing reasons into a single explicit
// bucket.
func normalizeReason(reason string) string {
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return NotSpecifiedReason
	}
	return trimmed
}

// reasonHistogram turns reason counts into sorted buckets whose counts sum
// exactly to the dropped-out total.
func reasonHistogram(counts map[string]int, droppedOut int) []ReasonBucket {
	buckets := make([]ReasonBucket, 0, len(counts))
	for reason, count := range counts {
		buckets = append(buckets, ReasonBucket{
			Reason:     reason,
			Count:      count,
			Percentage: Percentage(count, droppedOut),
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Reason < buckets[j].Reason
	})
	return buckets
}
