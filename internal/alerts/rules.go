package alerts

import (
	"fmt"
	"math"

	"github.com/couchcryptid/coastal-hazard-analytics/internal/domain"
)

// Rule trigger shares for the distribution-based rules.
const (
	concentrationShare = 0.60 // top region share of located reports
	dominanceShare     = 0.40 // top hazard share of all reports
)

// candidate is an alert a rule wants to raise, before the cooldown gate.
type candidate struct {
	kind            domain.AlertRuleKind
	severity        domain.Level
	title           string
	message         string
	data            map[string]any
	recommendations []string
}

// evaluateRules runs all six rules against a snapshot in fixed order. Rules
// are independent: several can fire on the same snapshot. Every rule is
// re-evaluated on every call; the cooldown gate, not diffing, is what keeps
// a persisting condition from alerting repeatedly.
func evaluateRules(snap domain.AnalyticsSnapshot, t domain.Thresholds) []candidate {
	var out []candidate

	if snap.Risk.Score >= t.HighRiskScore {
		out = append(out, candidate{
			kind:     domain.RuleRiskLevel,
			severity: domain.LevelHigh,
			title:    "High coastal hazard risk",
			message:  fmt.Sprintf("Risk score reached %d (threshold %d)", snap.Risk.Score, t.HighRiskScore),
			data:     map[string]any{"riskScore": snap.Risk.Score},
			recommendations: []string{
				"Activate the emergency coordination protocol.",
				"Notify duty officials in the affected districts.",
				"Cross-check citizen reports against INCOIS bulletins.",
			},
		})
	}

	if snap.Summary.RecentReports > t.HighActivity {
		out = append(out, candidate{
			kind:     domain.RuleHighActivity,
			severity: domain.LevelMedium,
			title:    "Spike in hazard reports",
			message:  fmt.Sprintf("%d reports received in the last 24 hours (threshold %d)", snap.Summary.RecentReports, t.HighActivity),
			data:     map[string]any{"recentReports": snap.Summary.RecentReports},
			recommendations: []string{
				"Assign additional analysts to the verification queue.",
				"Check whether a single event is driving the surge.",
			},
		})
	}

	if snap.Summary.TotalReports > 0 && snap.Summary.VerificationRate < t.LowVerificationRate {
		out = append(out, candidate{
			kind:     domain.RuleLowVerification,
			severity: domain.LevelMedium,
			title:    "Verification rate below target",
			message:  fmt.Sprintf("Only %.1f%% of reports are verified (target %.0f%%)", snap.Summary.VerificationRate, t.LowVerificationRate),
			data:     map[string]any{"verificationRate": snap.Summary.VerificationRate},
			recommendations: []string{
				"Review the pending queue for stale reports.",
				"Prioritize verification of high-risk hazard types.",
			},
		})
	}

	if snap.Performance.AvgResponseHours > t.HighResponseHours {
		out = append(out, candidate{
			kind:     domain.RuleSlowResponse,
			severity: domain.LevelLow,
			title:    "Slow verification turnaround",
			message:  fmt.Sprintf("Average response time is %.1f hours (target %.0f)", snap.Performance.AvgResponseHours, t.HighResponseHours),
			data:     map[string]any{"avgResponseTime": snap.Performance.AvgResponseHours},
			recommendations: []string{
				"Audit the analyst workload distribution.",
			},
		})
	}

	if region, count := domain.TopRegion(snap.Geo.Regions); snap.Geo.WithLocation > 0 {
		share := float64(count) / float64(snap.Geo.WithLocation)
		if share > concentrationShare {
			pct := int(math.Round(share * 100))
			out = append(out, candidate{
				kind:     domain.RuleGeoConcentration,
				severity: domain.LevelMedium,
				title:    "Reports concentrated in one region",
				message:  fmt.Sprintf("%s accounts for %d%% of located reports", region, pct),
				data:     map[string]any{"region": region, "percentage": pct},
				recommendations: []string{
					fmt.Sprintf("Direct field teams to the %s region.", region),
					"Confirm whether a localized event is underway.",
				},
			})
		}
	}

	if hazard, count := domain.TopHazard(snap.HazardTypes); snap.Summary.TotalReports > 0 {
		share := float64(count) / float64(snap.Summary.TotalReports)
		if share > dominanceShare {
			out = append(out, candidate{
				kind:     domain.RuleHazardDominance,
				severity: domain.LevelMedium,
				title:    "Single hazard type dominating",
				message:  fmt.Sprintf("%s makes up %d of %d reports", hazard, count, snap.Summary.TotalReports),
				data:     map[string]any{"hazardType": string(hazard), "count": count},
				recommendations: []string{
					fmt.Sprintf("Issue a public advisory for %s conditions.", hazard),
					"Verify the dominant reports before wider escalation.",
				},
			})
		}
	}

	return out
}
