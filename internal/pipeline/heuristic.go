package pipeline

import "strings"

// hazardKeywords route a question to the analytics path. The list is
// intentionally broad: a false positive only adds a ranking table to
// the answer, a false negative drops it.
var hazardKeywords = []string{
	"hazard",
	"top hazards",
	"most concerned hazards",
	"prevent",
	"incident",
	"ppe",
	"housekeeping",
	"barric",
	"permit",
	"lopc",
	"leak",
	"isolation plan",
}

// IsHazardQuery reports whether the question is asking about hazard
// themes and should trigger the ranking engine.
func IsHazardQuery(question string) bool {
	q := strings.ToLower(question)
	for _, kw := range hazardKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}
