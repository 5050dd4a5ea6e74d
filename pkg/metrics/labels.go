package metrics

import "strconv"

// scoreLabel bounds the label cardinality of throw scores.
func scoreLabel(score int) string {
	if score < 0 || score > 12 {
		return "invalid"
	}
	return strconv.Itoa(score)
}
