// pkg/resolver/score_test.go

package resolver

import (
	"testing"

	"github.com/agnivade/levenshtein"
)

func TestMatchScore_Bands(t *testing.T) {
	testCases := []struct {
		name      string
		query     string
		candidate string
		expected  float64
	}{
		{"exact match", "John Doe", "John Doe", 1.0},
		{"exact match different case", "john doe", "John Doe", 1.0},
		{"prefix match", "John", "John Doe", 0.9},
		{"substring match", "Doe", "John Doe", 0.7},
		{"no similarity", "Alice", "Bob", 0.0},
		{"both empty", "", "", 1.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			score := MatchScore(tc.query, tc.candidate)
			if score != tc.expected {
				t.Errorf("MatchScore(%q, %q) = %v, expected %v", tc.query, tc.candidate, score, tc.expected)
			}
		})
	}
}

func TestMatchScore_FuzzyBand(t *testing.T) {
	// One substitution over eight characters: similarity 0.875, scaled to
	// 0.4375. The fuzzy band must land strictly between the no-match floor
	// and the substring band.
	score := MatchScore("Jon Doe", "John Doe")

	if score <= 0.3 || score >= 0.7 {
		t.Errorf("MatchScore(\"Jon Doe\", \"John Doe\") = %v, expected strictly between 0.3 and 0.7", score)
	}
}

func TestMatchScore_BelowFuzzyThreshold(t *testing.T) {
	// Similarity under 0.8 scores zero, not a scaled value.
	score := MatchScore("John Doe", "Jane Smith")
	if score != 0.0 {
		t.Errorf("Expected 0.0 for dissimilar names, got %v", score)
	}
}

func TestLevenshteinDistance(t *testing.T) {
	testCases := []struct {
		a, b     string
		expected int
	}{
		{"abc", "abc", 0},
		{"abc", "abcd", 1},
		{"abcd", "abc", 1},
		{"abc", "abd", 1},
		{"abc", "xyz", 3},
		{"abc", "", 3},
		{"", "abc", 3},
		{"", "", 0},
	}

	for _, tc := range testCases {
		distance := levenshtein.ComputeDistance(tc.a, tc.b)
		if distance != tc.expected {
			t.Errorf("ComputeDistance(%q, %q) = %d, expected %d", tc.a, tc.b, distance, tc.expected)
		}
	}
}
