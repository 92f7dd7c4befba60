package analytics

import (
	"sort"
	"time"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/survey"
	"github.com/skillbridge-hub/skillbridge-portfolio/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// LONGITUDINAL SURVEY IMPACT MODULE
// Response behavior across the program lifecycle: BASELINE, ENDLINE and
// TRACER surveys only. MIDLINE is excluded from this module on purpose -
// the comparison is pre-program vs end vs follow-up.
// ══════════════════════════════════════════════════════════════════════════════

// LongitudinalImpact is the output of the longitudinal survey module.
type LongitudinalImpact struct {
	// Surveys carries per-survey metrics for every participating survey.
	Surveys []SurveyResponseMetrics `json:"surveys"`

	// TimeSeries has one point per survey, sorted ascending by date.
	TimeSeries []ImpactPoint `json:"time_series"`

	// Comparison pools surveys per type and subtracts response rates
	// across lifecycle stages.
	Comparison TypeComparison `json:"comparison"`
}

// SurveyResponseMetrics are the per-survey response figures.
type SurveyResponseMetrics struct {
	SurveyID string      `json:"survey_id"`
	Title    string      `json:"title"`
	Type     survey.Type `json:"type"`

	// TotalResponses counts submitted responses only.
	TotalResponses int `json:"total_responses"`

	// TargetedResponses counts every response row, pending included.
	TargetedResponses int `json:"targeted_responses"`

	// ResponseRate = submitted / targeted * 100.
	ResponseRate float64 `json:"response_rate"`

	// AverageResponseTimeDays is the mean days from survey creation to
	// submission, over submitted responses only.
	AverageResponseTimeDays float64 `json:"average_response_time_days"`
}

// ImpactPoint is one survey plotted on the longitudinal time line.
type ImpactPoint struct {
	// Date is the survey's start date when present, otherwise its creation
	// date, otherwise the evaluation date.
	Date         time.Time   `json:"date"`
	SurveyID     string      `json:"survey_id"`
	Title        string      `json:"title"`
	Type         survey.Type `json:"type"`
	ResponseRate float64     `json:"response_rate"`
}

// TypeAggregate pools every survey of one type.
type TypeAggregate struct {
	Surveys   int `json:"surveys"`
	Submitted int `json:"submitted"`
	Targeted  int `json:"targeted"`

	// ResponseRate is sum-of-submitted over sum-of-targeted, not a mean of
	// per-survey rates.
	ResponseRate float64 `json:"response_rate"`

	// AverageResponseTimeDays is the mean over all pooled per-response
	// day deltas.
	AverageResponseTimeDays float64 `json:"average_response_time_days"`
}

// TypeComparison compares pooled aggregates across lifecycle stages. The
// deltas are plain response-rate subtractions, not weighted effect sizes.
type TypeComparison struct {
	Baseline TypeAggregate `json:"baseline"`
	Endline  TypeAggregate `json:"endline"`
	Tracer   TypeAggregate `json:"tracer"`

	// BaselineToEndline = endline rate - baseline rate.
	BaselineToEndline float64 `json:"baseline_to_endline"`

	// EndlineToTracer = tracer rate - endline rate.
	EndlineToTracer float64 `json:"endline_to_tracer"`
}

// ComputeLongitudinalImpact aggregates response behavior for longitudinal
// survey types. now anchors the date fallback for surveys with neither a
// start date nor a creation timestamp. Empty input yields empty slices and
// zero aggregates, never an error.
func ComputeLongitudinalImpact(snap *Snapshot, now time.Time) LongitudinalImpact {
	responses := snap.ResponsesBySurvey()

	out := LongitudinalImpact{
		Surveys:    make([]SurveyResponseMetrics, 0),
		TimeSeries: make([]ImpactPoint, 0),
	}

	type pooled struct {
		agg       TypeAggregate
		dayDeltas []float64
	}
	pools := map[survey.Type]*pooled{
		survey.TypeBaseline: {},
		survey.TypeEndline:  {},
		survey.TypeTracer:   {},
	}

	for _, sv := range snap.Surveys {
		if !sv.Type.IsLongitudinal() {
			continue
		}

		rows := responses[sv.ID]
		metrics := SurveyResponseMetrics{
			SurveyID:          sv.ID,
			Title:             sv.Title,
			Type:              sv.Type,
			TargetedResponses: len(rows),
		}

		deltas := make([]float64, 0, len(rows))
		for _, r := range rows {
			if !r.IsSubmitted() {
				continue
			}
			metrics.TotalResponses++
			deltas = append(deltas, timeutil.DaysBetween(sv.CreatedAt, *r.SubmittedAt))
		}
		metrics.ResponseRate = Percentage(metrics.TotalResponses, metrics.TargetedResponses)
		metrics.AverageResponseTimeDays = Mean(deltas)

		out.Surveys = append(out.Surveys, metrics)
		out.TimeSeries = append(out.TimeSeries, ImpactPoint{
			Date:         sv.EffectiveDate(now),
			SurveyID:     sv.ID,
			Title:        sv.Title,
			Type:         sv.Type,
			ResponseRate: metrics.ResponseRate,
		})

		pool := pools[sv.Type]
		pool.agg.Surveys++
		pool.agg.Submitted += metrics.TotalResponses
		pool.agg.Targeted += metrics.TargetedResponses
		pool.dayDeltas = append(pool.dayDeltas, deltas...)
	}

	sort.Slice(out.TimeSeries, func(i, j int) bool {
		if !out.TimeSeries[i].Date.Equal(out.TimeSeries[j].Date) {
			return out.TimeSeries[i].Date.Before(out.TimeSeries[j].Date)
		}
		return out.TimeSeries[i].SurveyID < out.TimeSeries[j].SurveyID
	})

	for _, pool := range pools {
		pool.agg.ResponseRate = Percentage(pool.agg.Submitted, pool.agg.Targeted)
		pool.agg.AverageResponseTimeDays = Mean(pool.dayDeltas)
	}

	out.Comparison = TypeComparison{
		Baseline:          pools[survey.TypeBaseline].agg,
		Endline:           pools[survey.TypeEndline].agg,
		Tracer:            pools[survey.TypeTracer].agg,
		BaselineToEndline: Round2(pools[survey.TypeEndline].agg.ResponseRate - pools[survey.TypeBaseline].agg.ResponseRate),
		EndlineToTracer:   Round2(pools[survey.TypeTracer].agg.ResponseRate - pools[survey.TypeEndline].agg.ResponseRate),
	}

	return out
}
