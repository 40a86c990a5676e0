package domain

import (
	"math"
	"time"
)

// Risk score weighting. Reproduced exactly from the operational tuning; the
// alert evaluator's default thresholds assume these values.
const (
	highRiskWeight   = 3
	mediumRiskWeight = 2
	baseRiskWeight   = 1
	recencyWeight    = 2

	highRiskCutoff   = 20
	mediumRiskCutoff = 10
)

var highRiskTypes = map[HazardType]bool{
	HazardTsunami:    true,
	HazardCyclone:    true,
	HazardStormSurge: true,
}

var mediumRiskTypes = map[HazardType]bool{
	HazardHighWaves: true,
	HazardFlood:     true,
	HazardErosion:   true,
}

// BuildSnapshot computes the full analytics view over a report set. Pure:
// the result depends only on reports, now, and the region mapper.
func BuildSnapshot(reports []Report, now time.Time, regions RegionMapper) AnalyticsSnapshot {
	summary := buildSummary(reports, now)
	hazardTypes := countHazardTypes(reports)
	geo := buildGeoDistribution(reports, regions)
	risk := assessRisk(hazardTypes, summary.RecentReports)

	return AnalyticsSnapshot{
		Summary:     summary,
		HazardTypes: hazardTypes,
		Geo:         geo,
		TimeTrends:  TimeTrends{Last7Days: buildLast7Days(reports, now)},
		Risk:        risk,
		Performance: buildPerformance(reports, summary.VerificationRate),
		Insights:    buildInsights(hazardTypes, geo, risk, summary),
		GeneratedAt: now,
	}
}

func buildSummary(reports []Report, now time.Time) Summary {
	s := Summary{TotalReports: len(reports)}
	dayAgo := now.Add(-24 * time.Hour)
	for _, r := range reports {
		switch r.Status {
		case StatusVerified:
			s.VerifiedReports++
		case StatusPending:
			s.PendingReports++
		}
		if r.CreatedAt.After(dayAgo) {
			s.RecentReports++
		}
	}
	if s.TotalReports > 0 {
		s.VerificationRate = round1(float64(s.VerifiedReports) / float64(s.TotalReports) * 100)
	}
	return s
}

func countHazardTypes(reports []Report) map[HazardType]int {
	counts := make(map[HazardType]int)
	for _, r := range reports {
		if r.Type == "" {
			continue
		}
		counts[r.Type]++
	}
	return counts
}

func buildGeoDistribution(reports []Report, regions RegionMapper) GeoDistribution {
	geo := GeoDistribution{Regions: make(map[string]int)}
	for _, r := range reports {
		if !r.HasLocation() {
			continue
		}
		lat, lon := *r.Latitude, *r.Longitude
		geo.Regions[regions.Region(lat, lon)]++
		geo.Coordinates = append(geo.Coordinates, Coordinate{Lat: lat, Lon: lon})
		geo.WithLocation++
	}
	return geo
}

// buildLast7Days produces exactly seven day buckets, oldest first, ending on
// the calendar day of now. Days without reports stay at zero.
func buildLast7Days(reports []Report, now time.Time) []TrendPoint {
	const days = 7
	trend := make([]TrendPoint, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, i-days+1).Format("2006-01-02")
		trend[i] = TrendPoint{Date: date}
		index[date] = i
	}
	for _, r := range reports {
		i, ok := index[r.CreatedAt.Format("2006-01-02")]
		if !ok {
			continue
		}
		trend[i].Count++
		if r.Status == StatusVerified {
			trend[i].Verified++
		}
	}
	return trend
}

func assessRisk(hazardTypes map[HazardType]int, recentReports int) RiskAssessment {
	var highCount, mediumCount, otherCount int
	for t, n := range hazardTypes {
		switch {
		case highRiskTypes[t]:
			highCount += n
		case mediumRiskTypes[t]:
			mediumCount += n
		default:
			otherCount += n
		}
	}

	score := highRiskWeight*highCount +
		mediumRiskWeight*mediumCount +
		baseRiskWeight*otherCount +
		recencyWeight*recentReports

	level := LevelLow
	switch {
	case score >= highRiskCutoff:
		level = LevelHigh
	case score >= mediumRiskCutoff:
		level = LevelMedium
	}

	return RiskAssessment{
		Level:   level,
		Score:   score,
		Factors: riskFactors(highCount, mediumCount, recentReports),
	}
}

func riskFactors(highCount, mediumCount, recentReports int) []string {
	var factors []string
	if highCount > 0 {
		factors = append(factors, pluralize(highCount, "severe hazard report"))
	}
	if mediumCount > 0 {
		factors = append(factors, pluralize(mediumCount, "moderate hazard report"))
	}
	if recentReports > 0 {
		factors = append(factors, pluralize(recentReports, "report")+" in the last 24 hours")
	}
	return factors
}

func buildPerformance(reports []Report, verificationRate float64) Performance {
	perf := Performance{VerificationRate: verificationRate}

	var responseHours float64
	var responded int
	var qualityPoints int
	for _, r := range reports {
		if r.Status == StatusVerified && r.UpdatedAt != nil {
			responseHours += r.UpdatedAt.Sub(r.CreatedAt).Hours()
			responded++
		}
		qualityPoints += qualityScore(r)
	}
	if responded > 0 {
		perf.AvgResponseHours = round1(responseHours / float64(responded))
	}
	if len(reports) > 0 {
		perf.DataQuality = round1(float64(qualityPoints) / float64(len(reports)*qualityMaxPoints) * 100)
	}
	return perf
}

const qualityMaxPoints = 5

// qualityScore awards one point per substantive attribute, max five.
func qualityScore(r Report) int {
	points := 0
	if len(r.Title) > 10 {
		points++
	}
	if len(r.Description) > 20 {
		points++
	}
	if r.HasLocation() {
		points++
	}
	if r.ImageURL != "" {
		points++
	}
	if r.Type != "" {
		points++
	}
	return points
}

// TopHazard returns the most frequent hazard type and its count. Ties break
// by lexical order so the result is stable across runs.
func TopHazard(hazardTypes map[HazardType]int) (HazardType, int) {
	var top HazardType
	max := 0
	for t, n := range hazardTypes {
		if n > max || (n == max && max > 0 && t < top) {
			top, max = t, n
		}
	}
	return top, max
}

// TopRegion returns the busiest region and its count, with the same stable
// tie-breaking as TopHazard.
func TopRegion(regions map[string]int) (string, int) {
	var top string
	max := 0
	for name, n := range regions {
		if n > max || (n == max && max > 0 && name < top) {
			top, max = name, n
		}
	}
	return top, max
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
