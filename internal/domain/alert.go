package domain

import "time"

// AlertRuleKind identifies which evaluator rule produced an alert.
type AlertRuleKind string

const (
	RuleRiskLevel        AlertRuleKind = "risk_level"
	RuleHighActivity     AlertRuleKind = "high_activity"
	RuleLowVerification  AlertRuleKind = "low_verification"
	RuleSlowResponse     AlertRuleKind = "slow_response"
	RuleGeoConcentration AlertRuleKind = "geographic_concentration"
	RuleHazardDominance  AlertRuleKind = "hazard_dominance"
)

// AlertStatus is the two-state alert lifecycle. Acknowledged is terminal.
type AlertStatus string

const (
	AlertActive       AlertStatus = "active"
	AlertAcknowledged AlertStatus = "acknowledged"
)

// Alert is a derived, persisted notification that a threshold rule fired.
type Alert struct {
	ID              string         `json:"id"`
	Type            AlertRuleKind  `json:"type"`
	Severity        Level          `json:"severity"`
	Title           string         `json:"title"`
	Message         string         `json:"message"`
	Data            map[string]any `json:"data,omitempty"`
	Recommendations []string       `json:"recommendations,omitempty"`
	Status          AlertStatus    `json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	AcknowledgedAt  *time.Time     `json:"acknowledged_at,omitempty"`

	// Persisted is false when the store insert failed and the alert exists
	// only in the response that created it. Not stored.
	Persisted bool `json:"persisted"`
}

// Thresholds is the runtime-tunable rule configuration. In-memory only; a
// restart returns to defaults unless the caller re-applies a saved set.
type Thresholds struct {
	HighRiskScore       int     `json:"highRiskScore"`
	MediumRiskScore     int     `json:"mediumRiskScore"`
	HighActivity        int     `json:"highActivityThreshold"`
	LowVerificationRate float64 `json:"lowVerificationRate"`
	HighResponseHours   float64 `json:"highResponseTime"`
}

// DefaultThresholds returns the operational defaults the evaluator starts with.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighRiskScore:       20,
		MediumRiskScore:     10,
		HighActivity:        10,
		LowVerificationRate: 50,
		HighResponseHours:   24,
	}
}

// ThresholdPatch is a partial threshold update; nil fields keep their
// current value.
type ThresholdPatch struct {
	HighRiskScore       *int     `json:"highRiskScore,omitempty"`
	MediumRiskScore     *int     `json:"mediumRiskScore,omitempty"`
	HighActivity        *int     `json:"highActivityThreshold,omitempty"`
	LowVerificationRate *float64 `json:"lowVerificationRate,omitempty"`
	HighResponseHours   *float64 `json:"highResponseTime,omitempty"`
}

// Apply merges the patch into t, returning the result.
func (p ThresholdPatch) Apply(t Thresholds) Thresholds {
	if p.HighRiskScore != nil {
		t.HighRiskScore = *p.HighRiskScore
	}
	if p.MediumRiskScore != nil {
		t.MediumRiskScore = *p.MediumRiskScore
	}
	if p.HighActivity != nil {
		t.HighActivity = *p.HighActivity
	}
	if p.LowVerificationRate != nil {
		t.LowVerificationRate = *p.LowVerificationRate
	}
	if p.HighResponseHours != nil {
		t.HighResponseHours = *p.HighResponseHours
	}
	return t
}

// AlertStatistics summarizes the stored alert population.
type AlertStatistics struct {
	Total        int           `json:"total"`
	Active       int           `json:"active"`
	Acknowledged int           `json:"acknowledged"`
	BySeverity   map[Level]int `json:"bySeverity"`
	Recent       int           `json:"recent"` // created within the last 24h
}
