package topicengine

import "strings"

// Matches reports whether the MQTT topic candidate is contained by pattern
// under the `+`/`#` wildcard grammar: `+` matches exactly one segment, `#`
// matches as the final segment of pattern and swallows every remaining
// candidate segment, and a pattern shorter or longer than candidate without
// a terminal `#` never matches. Ported segment-for-segment from the
// original `Topic.contains`.
func Matches(pattern, candidate string) bool {
	if pattern == candidate {
		return true
	}

	patternParts := strings.Split(pattern, "/")
	candidateParts := strings.Split(candidate, "/")

	n := len(patternParts)
	if len(candidateParts) < n {
		n = len(candidateParts)
	}

	for i := 0; i < n; i++ {
		p := patternParts[i]
		c := candidateParts[i]

		patternIsLast := i == len(patternParts)-1 && len(patternParts) < len(candidateParts)
		candidateIsLast := i == len(candidateParts)-1 && len(candidateParts) < len(patternParts)
		isLastOnEitherSide := patternIsLast || candidateIsLast

		ok := ((p == c || p == "+") && !isLastOnEitherSide) || p == "#"
		if !ok {
			return false
		}
	}

	return true
}
