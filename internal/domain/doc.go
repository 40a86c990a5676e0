// Package domain models citizen-submitted coastal hazard reports and the
// analytics derived from them.
//
// # Data Source
//
// Reports originate from the citizen-facing reporting app. Each record carries
// a hazard type, a moderation status, optional WGS-84 coordinates, and an
// optional photo URL. Analysts and officials mutate status through their own
// services; this package only ever reads reports.
//
// # Risk Scoring
//
// The risk score is a weighted count, not a statistical model. Hazard types
// with the highest destructive potential (tsunami, cyclone, storm surge) count
// triple, moderate types (high waves, flood, erosion) double, everything else
// single, and each report from the last 24 hours adds two more points:
//
//	score = 3*high + 2*medium + 1*other + 2*recent24h
//	score >= 20 -> high | score >= 10 -> medium | else low
//
// The weights and cutoffs are deliberate configuration constants; dashboards
// and the alert evaluator both depend on their exact values.
//
// # Region Mapping
//
// Coordinates are bucketed into coarse metro regions by an ordered list of
// bounding boxes (Mumbai, Chennai, Kolkata, Kochi); the first box containing
// the point wins and anything unmatched lands in "Other". The table sits
// behind [RegionMapper] so a real reverse geocoder can replace it without
// touching the snapshot computation, but the synchronous in-memory lookup is
// intentional: snapshot building must not block on network calls.
//
// # Data Quality
//
// Each report earns one point per filled-in attribute (title longer than 10
// characters, description longer than 20, both coordinates, photo, hazard
// type), for a maximum of five. The set-wide quality score is the mean points
// per report scaled to 0-100.
//
// # Purity
//
// BuildSnapshot is a pure function of the report set, the supplied "now", and
// the region mapper. No clocks, stores, or globals are consulted, which is
// what makes the snapshot cacheable and the tests deterministic.
package domain
