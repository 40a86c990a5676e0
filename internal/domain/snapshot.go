package domain

import "time"

// Level is the shared three-step scale used for risk levels, insight
// priorities, and alert severities.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Summary holds the headline counters of a snapshot.
type Summary struct {
	TotalReports     int     `json:"totalReports"`
	VerifiedReports  int     `json:"verifiedReports"`
	PendingReports   int     `json:"pendingReports"`
	RecentReports    int     `json:"recentReports"` // created within the last 24h
	VerificationRate float64 `json:"verificationRate"`
}

// Coordinate is a raw report location included in the geo distribution.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// GeoDistribution buckets reports into coarse regions and keeps the raw
// coordinate list for map overlays.
type GeoDistribution struct {
	Regions      map[string]int `json:"regions"`
	Coordinates  []Coordinate   `json:"coordinates"`
	WithLocation int            `json:"withLocation"`
}

// TrendPoint is one calendar day in the trailing-7-day series.
type TrendPoint struct {
	Date     string `json:"date"` // YYYY-MM-DD
	Count    int    `json:"count"`
	Verified int    `json:"verified"`
}

// TimeTrends holds time-bucketed series. Last7Days always has exactly seven
// entries, oldest first, ending on the day of the snapshot.
type TimeTrends struct {
	Last7Days []TrendPoint `json:"last7Days"`
}

// RiskAssessment is the heuristic risk classification of the report set.
type RiskAssessment struct {
	Level   Level    `json:"level"`
	Score   int      `json:"score"`
	Factors []string `json:"factors"`
}

// Performance aggregates responsiveness and completeness measures.
type Performance struct {
	AvgResponseHours float64 `json:"avgResponseTime"` // verified reports only
	VerificationRate float64 `json:"verificationRate"`
	DataQuality      float64 `json:"dataQuality"` // 0-100 composite
}

// Insight is a derived, human-readable observation with a recommended action.
type Insight struct {
	Type           string `json:"type"`
	Priority       Level  `json:"priority"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	Recommendation string `json:"recommendation"`
}

// AnalyticsSnapshot is the full derived view over a bounded report set. It is
// a pure function of the input reports, the filter parameters, and the "now"
// supplied to BuildSnapshot.
type AnalyticsSnapshot struct {
	Summary     Summary            `json:"summary"`
	HazardTypes map[HazardType]int `json:"hazardTypes"`
	Geo         GeoDistribution    `json:"geoDistribution"`
	TimeTrends  TimeTrends         `json:"timeTrends"`
	Risk        RiskAssessment     `json:"riskAssessment"`
	Performance Performance        `json:"performance"`
	Insights    []Insight          `json:"insights"`
	GeneratedAt time.Time          `json:"generatedAt"`
}

// SocialSnapshot is the secondary analytics view sourced from the social
// media monitor. Opaque to this service beyond its envelope shape.
type SocialSnapshot struct {
	Posts                 []SocialPost   `json:"posts"`
	TrendingKeywords      []string       `json:"trendingKeywords"`
	SentimentDistribution map[string]int `json:"sentimentDistribution"`
	TotalPosts            int            `json:"totalPosts"`
}

// SocialPost is a single monitored social media post.
type SocialPost struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sentiment string    `json:"sentiment,omitempty"`
	PostedAt  time.Time `json:"posted_at"`
}
