package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func fp(v float64) *float64 { return &v }

func tp(t time.Time) *time.Time { return &t }

func makeReport(hazard HazardType, status ReportStatus, createdAt time.Time) Report {
	return Report{
		ID:          "rpt-" + string(hazard),
		Title:       "Citizen hazard observation",
		Type:        hazard,
		Description: "",
		Status:      status,
		CreatedAt:   createdAt,
	}
}

func TestBuildSnapshot(t *testing.T) {
	regions := NewBoundingBoxMapper()

	t.Run("elevated tsunami activity", func(t *testing.T) {
		createdAt := testNow.Add(-2 * time.Hour)
		var reports []Report
		for i := 0; i < 15; i++ {
			reports = append(reports, makeReport(HazardTsunami, StatusPending, createdAt))
		}
		for i := 0; i < 5; i++ {
			reports = append(reports, makeReport(HazardFlood, StatusPending, createdAt))
		}
		for i := 0; i < 5; i++ {
			reports = append(reports, makeReport(HazardPollution, StatusPending, createdAt))
		}
		for i := 0; i < 10; i++ {
			reports[i].Status = StatusVerified
		}

		snap := BuildSnapshot(reports, testNow, regions)

		assert.Equal(t, 25, snap.Summary.TotalReports)
		assert.Equal(t, 10, snap.Summary.VerifiedReports)
		assert.Equal(t, 15, snap.Summary.PendingReports)
		assert.Equal(t, 25, snap.Summary.RecentReports)
		assert.Equal(t, 40.0, snap.Summary.VerificationRate)

		assert.Equal(t, 15, snap.HazardTypes[HazardTsunami])
		assert.Equal(t, 5, snap.HazardTypes[HazardFlood])
		assert.Equal(t, 5, snap.HazardTypes[HazardPollution])

		// 15*3 + 5*2 + 5*1 + 25*2
		assert.Equal(t, 110, snap.Risk.Score)
		assert.Equal(t, LevelHigh, snap.Risk.Level)
		assert.Equal(t, []string{
			"15 severe hazard reports",
			"5 moderate hazard reports",
			"25 reports in the last 24 hours",
		}, snap.Risk.Factors)

		require.Len(t, snap.TimeTrends.Last7Days, 7)
		today := snap.TimeTrends.Last7Days[6]
		assert.Equal(t, "2025-06-15", today.Date)
		assert.Equal(t, 25, today.Count)
		assert.Equal(t, 10, today.Verified)

		// Title and type score one point each; no description, location, or image.
		assert.Equal(t, 40.0, snap.Performance.DataQuality)
		assert.Equal(t, 0.0, snap.Performance.AvgResponseHours)

		require.Len(t, snap.Insights, 3)
		assert.Equal(t, "dominant_hazard", snap.Insights[0].Type)
		assert.Equal(t, "high_risk", snap.Insights[1].Type)
		assert.Equal(t, "activity_spike", snap.Insights[2].Type)

		assert.Equal(t, testNow, snap.GeneratedAt)
	})

	t.Run("empty report set", func(t *testing.T) {
		snap := BuildSnapshot(nil, testNow, regions)

		assert.Equal(t, Summary{}, snap.Summary)
		assert.Empty(t, snap.HazardTypes)
		assert.Equal(t, 0, snap.Geo.WithLocation)
		assert.Equal(t, 0, snap.Risk.Score)
		assert.Equal(t, LevelLow, snap.Risk.Level)
		assert.Empty(t, snap.Risk.Factors)
		assert.Equal(t, Performance{}, snap.Performance)
		assert.Empty(t, snap.Insights)

		require.Len(t, snap.TimeTrends.Last7Days, 7)
		for _, p := range snap.TimeTrends.Last7Days {
			assert.Zero(t, p.Count)
			assert.Zero(t, p.Verified)
		}
	})

	t.Run("verification rate rounds to one decimal", func(t *testing.T) {
		reports := []Report{
			makeReport(HazardFlood, StatusVerified, testNow.Add(-time.Hour)),
			makeReport(HazardFlood, StatusPending, testNow.Add(-time.Hour)),
			makeReport(HazardFlood, StatusPending, testNow.Add(-time.Hour)),
		}
		snap := BuildSnapshot(reports, testNow, regions)
		assert.Equal(t, 33.3, snap.Summary.VerificationRate)
	})

	t.Run("untyped reports excluded from hazard counts", func(t *testing.T) {
		reports := []Report{
			makeReport("", StatusPending, testNow.Add(-time.Hour)),
			makeReport(HazardErosion, StatusPending, testNow.Add(-time.Hour)),
		}
		snap := BuildSnapshot(reports, testNow, regions)
		assert.Equal(t, map[HazardType]int{HazardErosion: 1}, snap.HazardTypes)
	})
}

func TestBuildGeoDistribution(t *testing.T) {
	regions := NewBoundingBoxMapper()

	mumbai := makeReport(HazardHighWaves, StatusPending, testNow.Add(-time.Hour))
	mumbai.Latitude, mumbai.Longitude = fp(19.07), fp(72.87)
	chennai := makeReport(HazardHighWaves, StatusPending, testNow.Add(-time.Hour))
	chennai.Latitude, chennai.Longitude = fp(13.08), fp(80.27)
	noLocation := makeReport(HazardHighWaves, StatusPending, testNow.Add(-time.Hour))

	snap := BuildSnapshot([]Report{mumbai, chennai, noLocation}, testNow, regions)

	assert.Equal(t, 2, snap.Geo.WithLocation)
	assert.Equal(t, map[string]int{"Mumbai": 1, "Chennai": 1}, snap.Geo.Regions)
	require.Len(t, snap.Geo.Coordinates, 2)
	assert.Equal(t, Coordinate{Lat: 19.07, Lon: 72.87}, snap.Geo.Coordinates[0])
}

func TestBuildLast7Days(t *testing.T) {
	t.Run("seven buckets oldest first ending today", func(t *testing.T) {
		trend := buildLast7Days(nil, testNow)

		require.Len(t, trend, 7)
		assert.Equal(t, "2025-06-09", trend[0].Date)
		assert.Equal(t, "2025-06-15", trend[6].Date)
	})

	t.Run("reports bucketed by calendar day", func(t *testing.T) {
		reports := []Report{
			makeReport(HazardFlood, StatusVerified, testNow.AddDate(0, 0, -3)),
			makeReport(HazardFlood, StatusPending, testNow.AddDate(0, 0, -3)),
			makeReport(HazardFlood, StatusPending, testNow),
		}
		trend := buildLast7Days(reports, testNow)

		assert.Equal(t, 2, trend[3].Count)
		assert.Equal(t, 1, trend[3].Verified)
		assert.Equal(t, 1, trend[6].Count)
	})

	t.Run("reports outside the window ignored", func(t *testing.T) {
		reports := []Report{
			makeReport(HazardFlood, StatusPending, testNow.AddDate(0, 0, -8)),
			makeReport(HazardFlood, StatusPending, testNow.AddDate(0, 0, 1)),
		}
		trend := buildLast7Days(reports, testNow)

		for _, p := range trend {
			assert.Zero(t, p.Count)
		}
	})
}

func TestAssessRisk(t *testing.T) {
	t.Run("level boundaries", func(t *testing.T) {
		cases := []struct {
			name   string
			counts map[HazardType]int
			recent int
			score  int
			level  Level
		}{
			{"low below ten", map[HazardType]int{HazardPollution: 9}, 0, 9, LevelLow},
			{"medium at ten", map[HazardType]int{HazardPollution: 10}, 0, 10, LevelMedium},
			{"medium just under twenty", map[HazardType]int{HazardPollution: 19}, 0, 19, LevelMedium},
			{"high at twenty", map[HazardType]int{HazardPollution: 20}, 0, 20, LevelHigh},
			{"recency weighted double", nil, 5, 10, LevelMedium},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				risk := assessRisk(tc.counts, tc.recent)
				assert.Equal(t, tc.score, risk.Score)
				assert.Equal(t, tc.level, risk.Level)
			})
		}
	})

	t.Run("adding reports never lowers the score", func(t *testing.T) {
		base := assessRisk(map[HazardType]int{HazardFlood: 3}, 2)
		for _, hazard := range []HazardType{HazardTsunami, HazardHighWaves, HazardPollution} {
			grown := assessRisk(map[HazardType]int{HazardFlood: 3, hazard: 1}, 2)
			assert.GreaterOrEqual(t, grown.Score, base.Score, "adding %s lowered the score", hazard)
		}
	})
}

func TestBuildPerformance(t *testing.T) {
	t.Run("average response over verified reports", func(t *testing.T) {
		fast := makeReport(HazardFlood, StatusVerified, testNow.Add(-10*time.Hour))
		fast.UpdatedAt = tp(testNow.Add(-8 * time.Hour))
		slow := makeReport(HazardFlood, StatusVerified, testNow.Add(-30*time.Hour))
		slow.UpdatedAt = tp(testNow.Add(-24 * time.Hour))
		pending := makeReport(HazardFlood, StatusPending, testNow.Add(-5*time.Hour))
		pending.UpdatedAt = tp(testNow)

		perf := buildPerformance([]Report{fast, slow, pending}, 66.7)

		// (2h + 6h) / 2 responded
		assert.Equal(t, 4.0, perf.AvgResponseHours)
		assert.Equal(t, 66.7, perf.VerificationRate)
	})

	t.Run("verified without updated_at excluded", func(t *testing.T) {
		r := makeReport(HazardFlood, StatusVerified, testNow.Add(-10*time.Hour))
		perf := buildPerformance([]Report{r}, 100)
		assert.Equal(t, 0.0, perf.AvgResponseHours)
	})
}

func TestQualityScore(t *testing.T) {
	t.Run("full marks", func(t *testing.T) {
		r := Report{
			Title:       "High waves near Marine Drive",
			Type:        HazardHighWaves,
			Description: "Waves breaching the promenade wall since morning.",
			Latitude:    fp(18.94),
			Longitude:   fp(72.82),
			ImageURL:    "https://example.com/wave.jpg",
		}
		assert.Equal(t, 5, qualityScore(r))
	})

	t.Run("bare report", func(t *testing.T) {
		assert.Equal(t, 0, qualityScore(Report{Title: "waves", Description: "big"}))
	})
}

func TestTopHazard(t *testing.T) {
	t.Run("highest count wins", func(t *testing.T) {
		top, count := TopHazard(map[HazardType]int{HazardFlood: 2, HazardTsunami: 5})
		assert.Equal(t, HazardTsunami, top)
		assert.Equal(t, 5, count)
	})

	t.Run("ties break lexically", func(t *testing.T) {
		top, _ := TopHazard(map[HazardType]int{HazardTsunami: 3, HazardFlood: 3})
		assert.Equal(t, HazardFlood, top)
	})

	t.Run("empty map", func(t *testing.T) {
		top, count := TopHazard(nil)
		assert.Equal(t, HazardType(""), top)
		assert.Zero(t, count)
	})
}

func TestTopRegion(t *testing.T) {
	t.Run("ties break lexically", func(t *testing.T) {
		top, count := TopRegion(map[string]int{"Mumbai": 4, "Chennai": 4})
		assert.Equal(t, "Chennai", top)
		assert.Equal(t, 4, count)
	})
}
