// Package scoring rates how similar two titles are.
package scoring

import (
	"math"
	"strings"
)

// Distance is the Levenshtein distance between the lower-cased forms of a
// and b, counted in runes.
func Distance(a, b string) int {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// Score maps Distance onto [0, 100]: 100 for equal strings, 0 when every
// rune of the longer string has to change.
func Score(a, b string) int {
	la := len([]rune(strings.ToLower(a)))
	lb := len([]rune(strings.ToLower(b)))
	longest := max(la, lb)
	if longest == 0 {
		return 100
	}

	d := Distance(a, b)
	return int(math.Round(100 * (1 - float64(d)/float64(longest))))
}
