package recon

import "strings"

// NormalizeText lowercases and strips everything that is not a letter or
// digit, so "INV-0042 / ACME Corp." and "inv0042 acme corp" compare equal.
func NormalizeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// levenshteinDistance computes the edit distance between two strings using
// two rolling rows of the DP table.
func levenshteinDistance(a, b string) int {
	m, n := len(a), len(b)
	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}

	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1]
			} else {
				curr[j] = 1 + min(prev[j], min(curr[j-1], prev[j-1]))
			}
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

// TextSimilarity scores two free-text strings in [0,1]: 1 for equal after
// normalization, 0 if either is empty after normalization.
func TextSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	normA := NormalizeText(a)
	normB := NormalizeText(b)

	if normA == normB {
		if normA == "" {
			return 0
		}
		return 1
	}

	maxLen := max(len(normA), len(normB))
	if maxLen == 0 {
		return 0
	}

	distance := levenshteinDistance(normA, normB)
	return 1 - float64(distance)/float64(maxLen)
}

// ReferenceMatchScore scores two references: exact normalized equality is
// 1.0, substring containment either way is 0.8, anything else falls back to
// half the text similarity.
func ReferenceMatchScore(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	normA := NormalizeText(a)
	normB := NormalizeText(b)
	if normA == "" || normB == "" {
		return 0
	}

	if normA == normB {
		return 1
	}

	if strings.Contains(normA, normB) || strings.Contains(normB, normA) {
		return 0.8
	}

	return TextSimilarity(a, b) * 0.5
}
