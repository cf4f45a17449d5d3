package analytics

import "github.com/sheikhmuhammadzain/vehs-analyst/internal/model"

// playbook maps each hazard theme to its prescriptive remediation steps.
// Static configuration: referenced, never mutated.
var playbook = map[model.HazardTag][]string{
	model.TagPermitManagement: {
		"Keep permits at work-front and CCR; cross-reference every permit to an isolation diagram.",
		"Increase permit-audit sample size; include 'critical isolation' checklist.",
	},
	model.TagIsolationPlan: {
		"Field-verify isolation plans and update when work changes; enforce MOC for deviations.",
		"Run pre-energization checks with two-person verification.",
	},
	model.TagFirewaterMisuse: {
		"Physically decouple process-water tie-ins; add interlocks and signage.",
		"Weekly verification of firewater hydraulics; MOC for temporary tie-ins.",
	},
	model.TagHousekeepingTrip: {
		"Implement cable management (trays/mats), daily 5S checks, defined walkways.",
	},
	model.TagPPECompliance: {
		"Ensure point-of-use PPE availability; supervisor spot-checks; toolbox talks on specific gaps.",
	},
	model.TagBarricationTools: {
		"Standardize barricading kits and visual standards; pre-job barricade checks.",
	},
	model.TagMechanicalIntegrity: {
		"Refresh RBI and circuit coverage; clear inspection backlogs; monitor IOWs.",
		"Escalate repeat failures to RCFA and redesign; adjust PM frequencies.",
	},
	model.TagLOPCLeakage: {
		"Hose/fitting integrity checks; quick-connect standards; leak near-miss reporting.",
	},
	model.TagOther: {
		"Review the finding text and assign a specific control owner.",
	},
}

// Steps returns the remediation playbook for a hazard theme, falling
// back to the Other entry for any tag without one.
func Steps(tag model.HazardTag) []string {
	if steps, ok := playbook[tag]; ok {
		return steps
	}
	return playbook[model.TagOther]
}
