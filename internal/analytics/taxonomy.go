package analytics

import (
	"regexp"
	"strings"

	"github.com/sheikhmuhammadzain/vehs-analyst/internal/model"
)

// Rule pairs a hazard theme with the pattern that detects it in free text
type Rule struct {
	Tag     model.HazardTag
	Pattern *regexp.Regexp
}

// TagRules is the fixed taxonomy, evaluated against lower-cased text.
// Every rule is tested independently: a record may carry multiple tags
// (a leak can also be a mechanical-integrity issue). Order only affects
// reporting order, never which rules match.
var TagRules = []Rule{
	{model.TagPermitManagement, regexp.MustCompile(`\bpermit|permits\b`)},
	{model.TagIsolationPlan, regexp.MustCompile(`\bisolation plan|re-energiz`)},
	{model.TagFirewaterMisuse, regexp.MustCompile(`\bfirewater\b`)},
	{model.TagHousekeepingTrip, regexp.MustCompile(`\bcable|housekeeping|trip(ping)?\b`)},
	{model.TagPPECompliance, regexp.MustCompile(`\bppe|mask|glove|helmet|goggles\b`)},
	{model.TagBarricationTools, regexp.MustCompile(`\bbarric(ad|ation)|warning lights|tools\b`)},
	{model.TagMechanicalIntegrity, regexp.MustCompile(`\bend of service life|aging|not yet been inspected|mechanical integrity|\bmi\b`)},
	{model.TagLOPCLeakage, regexp.MustCompile(`\bleak|\blopc\b|leakage\b`)},
}

// TagText classifies free text into hazard themes. The result is never
// empty: when no rule matches it is exactly [TagOther].
func TagText(text string) []model.HazardTag {
	t := strings.ToLower(text)
	var tags []model.HazardTag
	for _, rule := range TagRules {
		if rule.Pattern.MatchString(t) {
			tags = append(tags, rule.Tag)
		}
	}
	if len(tags) == 0 {
		return []model.HazardTag{model.TagOther}
	}
	return tags
}
