package resolve

// Similarity scoring for near-miss variable names. sahilm/fuzzy does
// subsequence matching, which is the wrong tool here: the resolver
// contract wants a normalized edit-distance ratio with a fixed
// acceptance threshold, so a small levenshtein is computed directly.

// matchThreshold is the minimum similarity ratio (exclusive) at which
// a near-miss variable name is offered to the user.
const matchThreshold = 70

// bestMatch returns the candidate with the highest similarity ratio
// to name, and that ratio. An empty candidate list yields ("", 0).
func bestMatch(name string, candidates []string) (string, int) {
	best, bestScore := "", 0
	for _, c := range candidates {
		if score := ratio(name, c); score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, bestScore
}

// ratio is a normalized levenshtein similarity in 0..100, where 100
// means the strings are identical.
func ratio(a, b string) int {
	if a == b {
		return 100
	}
	ra, rb := []rune(a), []rune(b)
	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 100
	}
	return 100 * (longest - levenshtein(ra, rb)) / longest
}

// levenshtein computes the edit distance between two rune slices
// using the classic two-row dynamic program.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
