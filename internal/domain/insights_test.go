package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insightTypes(insights []Insight) []string {
	var types []string
	for _, i := range insights {
		types = append(types, i.Type)
	}
	return types
}

func TestBuildInsights(t *testing.T) {
	t.Run("dominant hazard carries its recommendation", func(t *testing.T) {
		insights := buildInsights(
			map[HazardType]int{HazardCyclone: 4, HazardFlood: 1},
			GeoDistribution{},
			RiskAssessment{Level: LevelLow},
			Summary{TotalReports: 5},
		)

		require.Len(t, insights, 1)
		assert.Equal(t, "dominant_hazard", insights[0].Type)
		assert.Equal(t, LevelMedium, insights[0].Priority)
		assert.Contains(t, insights[0].Message, "cyclone accounts for 4 of 5 reports")
		assert.Equal(t, recommendations[HazardCyclone], insights[0].Recommendation)
	})

	t.Run("unlisted hazard falls back to generic advice", func(t *testing.T) {
		insights := buildInsights(
			map[HazardType]int{HazardSwellSurge: 2},
			GeoDistribution{},
			RiskAssessment{Level: LevelLow},
			Summary{TotalReports: 2},
		)

		require.Len(t, insights, 1)
		assert.Equal(t, defaultRecommendation, insights[0].Recommendation)
	})

	t.Run("high risk adds a high priority insight", func(t *testing.T) {
		insights := buildInsights(
			map[HazardType]int{HazardTsunami: 10},
			GeoDistribution{},
			RiskAssessment{Level: LevelHigh, Score: 30},
			Summary{TotalReports: 10},
		)

		assert.Equal(t, []string{"dominant_hazard", "high_risk"}, insightTypes(insights))
		assert.Equal(t, LevelHigh, insights[1].Priority)
	})

	t.Run("activity spike fires above ten recent reports", func(t *testing.T) {
		at := buildInsights(nil, GeoDistribution{}, RiskAssessment{}, Summary{TotalReports: 10, RecentReports: 10})
		above := buildInsights(nil, GeoDistribution{}, RiskAssessment{}, Summary{TotalReports: 11, RecentReports: 11})

		assert.NotContains(t, insightTypes(at), "activity_spike")
		assert.Contains(t, insightTypes(above), "activity_spike")
	})

	t.Run("geographic concentration needs over forty percent", func(t *testing.T) {
		spread := buildInsights(nil, GeoDistribution{
			Regions:      map[string]int{"Mumbai": 4, "Chennai": 3, "Kochi": 3},
			WithLocation: 10,
		}, RiskAssessment{}, Summary{TotalReports: 10})
		concentrated := buildInsights(nil, GeoDistribution{
			Regions:      map[string]int{"Mumbai": 5, "Chennai": 5},
			WithLocation: 10,
		}, RiskAssessment{}, Summary{TotalReports: 10})

		assert.Empty(t, insightTypes(spread))
		require.Len(t, concentrated, 1)
		assert.Equal(t, "geographic_concentration", concentrated[0].Type)
		assert.Contains(t, concentrated[0].Message, "Chennai holds 50%")
	})

	t.Run("no reports no insights", func(t *testing.T) {
		assert.Empty(t, buildInsights(nil, GeoDistribution{}, RiskAssessment{}, Summary{}))
	})
}
