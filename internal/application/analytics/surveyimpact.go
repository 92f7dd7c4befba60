package analytics

import (
	"sort"
	"strconv"
	"strings"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/domain/survey"
)

// ══════════════════════════════════════════════════════════════════════════════
// SURVEY IMPACT SUMMARY MODULE
// Per-survey completion, sentiment and positivity over submitted responses,
// plus the portfolio-level roll-up. Sentiment is a heuristic read of SCALE
// answers; positivity additionally classifies choice answers by keyword.
// ══════════════════════════════════════════════════════════════════════════════

// positiveKeywords classify a choice answer as positive when any of them
// appears as a substring of the upper-cased answer text. Fixed product list.
var positiveKeywords = []string{
	"YES", "POSITIVE", "AGREE", "SATISFIED", "GOOD", "EXCELLENT", "VERY GOOD",
}

// positiveScaleFloor is the minimum parsed SCALE value read as positive.
// Fixed regardless of the scale's actual maximum - a documented heuristic,
// not adaptive.
const positiveScaleFloor = 3

// SurveyImpactSummary is the output of the survey impact module.
type SurveyImpactSummary struct {
	// Surveys carries one summary per survey, sorted descending by
	// completion rate.
	Surveys []SurveyImpact `json:"surveys"`

	TotalSurveys int `json:"total_surveys"`

	// OverallCompletionRate is sum-of-submitted over sum-of-targeted
	// across every survey - a true weighted average.
	OverallCompletionRate float64 `json:"overall_completion_rate"`

	// OverallAverageSentiment is the simple mean of per-survey sentiment
	// averages, excluding surveys whose average is exactly 0. The
	// exclusion conflates "no scale data" with "uniformly lowest score"
	// and is preserved as specified pending product guidance.
	OverallAverageSentiment float64 `json:"overall_average_sentiment"`
}

// SurveyImpact summarizes one survey.
type SurveyImpact struct {
	SurveyID string      `json:"survey_id"`
	Title    string      `json:"title"`
	Type     survey.Type `json:"type"`

	// Targeted counts every response row for the survey, pending included.
	Targeted int `json:"targeted"`

	// Submitted counts responses with a submission timestamp.
	Submitted int `json:"submitted"`

	// CompletionRate = submitted / targeted * 100.
	CompletionRate float64 `json:"completion_rate"`

	// AverageSentiment is the mean of numeric SCALE answer values from
	// submitted responses. Unparseable and negative values are skipped
	// silently, never treated as 0.
	AverageSentiment float64 `json:"average_sentiment"`

	// PositiveResponseRate is the share of evaluated answers classified
	// positive. Only SCALE and choice answers are evaluated; other
	// question types contribute to neither numerator nor denominator.
	PositiveResponseRate float64 `json:"positive_response_rate"`

	// EvaluatedAnswers is the positivity denominator.
	EvaluatedAnswers int `json:"evaluated_answers"`
}

// ComputeSurveyImpact aggregates survey completion and sentiment across the
// portfolio. Empty input yields an empty summary, never an error.
func ComputeSurveyImpact(snap *Snapshot) SurveyImpactSummary {
	responses := snap.ResponsesBySurvey()
	answers := snap.AnswersByResponse()
	questions := snap.QuestionsByID()

	out := SurveyImpactSummary{
		Surveys:      make([]SurveyImpact, 0, len(snap.Surveys)),
		TotalSurveys: len(snap.Surveys),
	}

	var totalTargeted, totalSubmitted int
	sentiments := make([]float64, 0, len(snap.Surveys))

	for _, sv := range snap.Surveys {
		impact := summarizeSurvey(sv, responses[sv.ID], answers, questions)
		out.Surveys = append(out.Surveys, impact)

		totalTargeted += impact.Targeted
		totalSubmitted += impact.Submitted
		if impact.AverageSentiment != 0 {
			sentiments = append(sentiments, impact.AverageSentiment)
		}
	}

	sort.Slice(out.Surveys, func(i, j int) bool {
		if out.Surveys[i].CompletionRate != out.Surveys[j].CompletionRate {
			return out.Surveys[i].CompletionRate > out.Surveys[j].CompletionRate
		}
		return out.Surveys[i].Title < out.Surveys[j].Title
	})

	out.OverallCompletionRate = Percentage(totalSubmitted, totalTargeted)
	out.OverallAverageSentiment = Mean(sentiments)

	return out
}

// summarizeSurvey computes completion, sentiment and positivity for one
// survey from its submitted responses.
func summarizeSurvey(
	sv *survey.Survey,
	rows []*survey.Response,
	answersByResponse map[string][]*survey.Answer,
	questions map[string]*survey.Question,
) SurveyImpact {
	impact := SurveyImpact{
		SurveyID: sv.ID,
		Title:    sv.Title,
		Type:     sv.Type,
		Targeted: len(rows),
	}

	scaleValues := make([]float64, 0)
	var positive, evaluated int

	for _, r := range rows {
		if !r.IsSubmitted() {
			continue
		}
		impact.Submitted++

		for _, a := range answersByResponse[r.ID] {
			q, ok := questions[a.QuestionID]
			if !ok {
				continue
			}

			switch {
			case q.Type == survey.QuestionTypeScale:
				v, err := strconv.ParseFloat(a.TrimmedValue(), 64)
				if err != nil || v < 0 {
					continue
				}
				scaleValues = append(scaleValues, v)
				evaluated++
				if v >= positiveScaleFloor {
					positive++
				}

			case q.Type.IsChoice():
				evaluated++
				if isPositiveChoice(a.Value) {
					positive++
				}
			}
		}
	}

	impact.CompletionRate = Percentage(impact.Submitted, impact.Targeted)
	impact.AverageSentiment = Mean(scaleValues)
	impact.PositiveResponseRate = Percentage(positive, evaluated)
	impact.EvaluatedAnswers = evaluated

	return impact
}

// isPositiveChoice reports whether a choice answer reads as positive.
func isPositiveChoice(value string) bool {
	upper := strings.ToUpper(value)
	for _, kw := range positiveKeywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}
