package model

import "time"

// SheetKind identifies which source sheet a record came from
type SheetKind string

const (
	SheetHazardID           SheetKind = "Hazard ID"
	SheetAuditFindings      SheetKind = "Audit Findings"
	SheetInspectionFindings SheetKind = "Inspection Findings"
)

// HazardTag is one category in the fixed taxonomy of safety concern themes
type HazardTag string

const (
	TagPermitManagement    HazardTag = "Permit Management"
	TagIsolationPlan       HazardTag = "Isolation Plan Accuracy"
	TagFirewaterMisuse     HazardTag = "Firewater System Misuse"
	TagHousekeepingTrip    HazardTag = "Housekeeping/Trip"
	TagPPECompliance       HazardTag = "PPE Compliance"
	TagBarricationTools    HazardTag = "Barrication/Tools"
	TagMechanicalIntegrity HazardTag = "Mechanical Integrity/Aging"
	TagLOPCLeakage         HazardTag = "LOPC/Leakage"
	TagOther               HazardTag = "Other"
)

// SeverityUnknown marks a record whose severity could not be determined.
// Known severities are 0 (no ill effect) through 3 (severe).
const SeverityUnknown = -1

// NormalizedRecord is the uniform per-row shape every sheet normalizer produces.
// Tags is never empty: rows matching no taxonomy rule carry TagOther.
type NormalizedRecord struct {
	Tags     []HazardTag
	Severity int // 0-3 or SeverityUnknown
	Date     time.Time
	HasDate  bool
	Sheet    SheetKind
	RecordID string
	Location string
}

// Citation points back at the source row supporting an aggregate statistic
type Citation struct {
	Sheet    SheetKind `json:"source_sheet"`
	RecordID string    `json:"record_id"`
}

// HazardAggregate accumulates per-tag statistics during a single ranking run
type HazardAggregate struct {
	Tag         HazardTag
	Count       int
	SeveritySum int
	SeverityN   int
	Recent      int
	Samples     []Citation
}

// RankedHazard is one entry in the final ranking, enriched with playbook steps
type RankedHazard struct {
	Hazard       HazardTag  `json:"hazard"`
	Count        int        `json:"count"`
	AvgSeverity  float64    `json:"avg_sev"`
	Recent       int        `json:"recent"`
	ConcernScore float64    `json:"concern_score"`
	Samples      []Citation `json:"samples"`
	Steps        []string   `json:"steps"`
}

// Ranking is the ranked hazard list returned to the orchestration boundary
type Ranking struct {
	Top []RankedHazard `json:"top"`
}

// ScopeFilter narrows which records are analyzed. All fields are optional;
// a zero value means unconstrained. Text matching is case-insensitive
// substring containment; date bounds are inclusive.
type ScopeFilter struct {
	Location   string     `json:"location,omitempty"`
	Department string     `json:"department,omitempty"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

// IsZero reports whether the filter carries no constraints at all
func (f ScopeFilter) IsZero() bool {
	return f.Location == "" && f.Department == "" && f.StartDate == nil && f.EndDate == nil
}

// Merge overlays f on top of other: fields set in f win, unset fields
// fall back to other. Used to let explicit UI filters override filters
// extracted from the question text.
func (f ScopeFilter) Merge(other ScopeFilter) ScopeFilter {
	out := f
	if out.Location == "" {
		out.Location = other.Location
	}
	if out.Department == "" {
		out.Department = other.Department
	}
	if out.StartDate == nil {
		out.StartDate = other.StartDate
	}
	if out.EndDate == nil {
		out.EndDate = other.EndDate
	}
	return out
}
