package usecase

// Similarity scores two normalized strings in [0, 1] as
// 1 - levenshtein(a, b) / max(len(a), len(b)).
// Either input being empty scores 0, including "" against "".
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	r1 := []rune(a)
	r2 := []rune(b)

	maxLen := len(r1)
	if len(r2) > maxLen {
		maxLen = len(r2)
	}

	return 1 - float64(levenshteinDistance(r1, r2))/float64(maxLen)
}

// levenshteinDistance calculates the edit distance between two rune slices
// with unit costs for insertion, deletion and substitution.
func levenshteinDistance(r1, r2 []rune) int {
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	// Keep the shorter slice as the row to bound memory
	if len(r2) > len(r1) {
		r1, r2 = r2, r1
	}
	m := len(r1)
	n := len(r2)

	// Two rows instead of the full matrix
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
