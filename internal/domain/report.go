package domain

import "time"

// HazardType classifies a citizen report. The set is open-ended on the wire
// (older app versions sent free text) but new submissions pick from this list.
type HazardType string

const (
	HazardTsunami        HazardType = "tsunami"
	HazardStormSurge     HazardType = "storm_surge"
	HazardHighWaves      HazardType = "high_waves"
	HazardSwellSurge     HazardType = "swell_surge"
	HazardCoastalCurrent HazardType = "coastal_current"
	HazardFlood          HazardType = "flood"
	HazardCyclone        HazardType = "cyclone"
	HazardErosion        HazardType = "erosion"
	HazardPollution      HazardType = "pollution"
	HazardAbnormalSea    HazardType = "abnormal_sea"
	HazardOther          HazardType = "other"
)

// ReportStatus tracks the moderation lifecycle of a report.
type ReportStatus string

const (
	StatusPending   ReportStatus = "pending"
	StatusVerified  ReportStatus = "verified"
	StatusRejected  ReportStatus = "rejected"
	StatusResolved  ReportStatus = "resolved"
	StatusForwarded ReportStatus = "forwarded"
)

// Report is a citizen-submitted hazard observation. Read-only here: creation
// and moderation happen in other services.
type Report struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Type        HazardType   `json:"type"`
	Description string       `json:"description"`
	Status      ReportStatus `json:"status"`
	Latitude    *float64     `json:"latitude,omitempty"`
	Longitude   *float64     `json:"longitude,omitempty"`
	ImageURL    string       `json:"image_url,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   *time.Time   `json:"updated_at,omitempty"`
}

// HasLocation reports whether both coordinates are present.
func (r Report) HasLocation() bool {
	return r.Latitude != nil && r.Longitude != nil
}
