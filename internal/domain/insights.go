package domain

import "fmt"

// Insight trigger cutoffs.
const (
	activitySpikeCutoff       = 10   // recent-24h reports
	concentrationInsightShare = 0.40 // top region share of located reports
)

// recommendations maps hazard types to the action suggested alongside the
// dominant-hazard insight.
var recommendations = map[HazardType]string{
	HazardTsunami:    "Verify with tide gauge and seismic data; prepare evacuation advisories for low-lying areas.",
	HazardCyclone:    "Track IMD cyclone bulletins and pre-position response teams along the projected path.",
	HazardStormSurge: "Issue coastal flooding warnings and restrict access to seafront areas.",
	HazardHighWaves:  "Advise fishermen and small craft to stay in harbour until conditions subside.",
	HazardFlood:      "Coordinate with municipal drainage teams and open relief shelters if levels rise.",
	HazardErosion:    "Schedule a shoreline survey and review protection structures in affected stretches.",
	HazardPollution:  "Dispatch a water quality team and notify the pollution control board.",
}

const defaultRecommendation = "Increase monitoring of the affected area and verify incoming reports promptly."

// recommendationFor returns the action for a hazard type, falling back to the
// generic advice for types without a dedicated entry.
func recommendationFor(t HazardType) string {
	if rec, ok := recommendations[t]; ok {
		return rec
	}
	return defaultRecommendation
}

// buildInsights derives the rule-based observations for a snapshot. The rules
// run in a fixed order so the output sequence is deterministic; an empty
// report set yields no insights.
func buildInsights(hazardTypes map[HazardType]int, geo GeoDistribution, risk RiskAssessment, summary Summary) []Insight {
	var insights []Insight

	if top, count := TopHazard(hazardTypes); count > 0 {
		insights = append(insights, Insight{
			Type:           "dominant_hazard",
			Priority:       LevelMedium,
			Title:          "Most reported hazard",
			Message:        fmt.Sprintf("%s accounts for %d of %d reports", top, count, summary.TotalReports),
			Recommendation: recommendationFor(top),
		})
	}

	if risk.Level == LevelHigh {
		insights = append(insights, Insight{
			Type:           "high_risk",
			Priority:       LevelHigh,
			Title:          "High risk level",
			Message:        fmt.Sprintf("Current risk score is %d, above the high-risk threshold", risk.Score),
			Recommendation: "Activate the emergency coordination protocol and brief duty officials.",
		})
	}

	if summary.RecentReports > activitySpikeCutoff {
		insights = append(insights, Insight{
			Type:           "activity_spike",
			Priority:       LevelMedium,
			Title:          "Unusual reporting activity",
			Message:        fmt.Sprintf("%d reports received in the last 24 hours", summary.RecentReports),
			Recommendation: "Assign additional analysts to keep verification turnaround low.",
		})
	}

	if top, count := TopRegion(geo.Regions); count > 0 && geo.WithLocation > 0 {
		share := float64(count) / float64(geo.WithLocation)
		if share > concentrationInsightShare {
			insights = append(insights, Insight{
				Type:           "geographic_concentration",
				Priority:       LevelMedium,
				Title:          "Reports concentrated in one region",
				Message:        fmt.Sprintf("%s holds %.0f%% of located reports", top, share*100),
				Recommendation: fmt.Sprintf("Focus field verification resources on the %s region.", top),
			})
		}
	}

	return insights
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
