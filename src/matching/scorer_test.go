package matching

import (
	"testing"

	"github.com/kltransit/lostfound/src/shared/models"
)

func item(category, station, mode string, keywords ...string) *models.Item {
	return &models.Item{
		Category:  category,
		StationID: station,
		Mode:      mode,
		Keywords:  keywords,
	}
}

func TestScoreFullMatch(t *testing.T) {
	a := item("Electronics", "KL Sentral", "LRT", "black", "phone", "samsung", "cracked")
	b := item("Electronics", "KL Sentral", "LRT", "black", "phone", "samsung", "cracked")

	if got := Score(a, b); got != 100 {
		t.Errorf("expected 100, got %d", got)
	}
}

func TestScoreNoOverlap(t *testing.T) {
	a := item("Electronics", "KL Sentral", "LRT", "phone")
	b := item("Bags", "Gombak", "MRT", "backpack")

	if got := Score(a, b); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestScoreTerms(t *testing.T) {
	tests := []struct {
		name      string
		target    *models.Item
		candidate *models.Item
		want      int
	}{
		{
			name:      "category only",
			target:    item("Bags", "", ""),
			candidate: item("Bags", "", ""),
			want:      40,
		},
		{
			name:      "station normalized and trimmed",
			target:    item("Bags", "Gombak", ""),
			candidate: item("Wallets", "gombak ", ""),
			want:      30,
		},
		{
			name:      "station substring alias",
			target:    item("Bags", "KL Sentral", ""),
			candidate: item("Wallets", "Sentral", ""),
			want:      30,
		},
		{
			name:      "mode exact only",
			target:    item("Bags", "", "LRT"),
			candidate: item("Wallets", "", "LRT"),
			want:      10,
		},
		{
			name:      "mode mismatch scores zero",
			target:    item("Bags", "", "LRT"),
			candidate: item("Wallets", "", "lrt"),
			want:      0,
		},
		{
			name:      "keywords capped at 20",
			target:    item("Bags", "", "", "a", "b", "c", "d", "e", "f"),
			candidate: item("Wallets", "", "", "a", "b", "c", "d", "e", "f"),
			want:      20,
		},
		{
			name:      "keyword substring either direction",
			target:    item("Bags", "", "", "backpack"),
			candidate: item("Wallets", "", "", "pack"),
			want:      5,
		},
		{
			name:      "missing fields contribute zero",
			target:    item("", "", ""),
			candidate: item("", "", ""),
			want:      0,
		},
		{
			name:      "scenario: bags at gombak on lrt",
			target:    item("Bags", "Gombak", "LRT", "black", "backpack"),
			candidate: item("Bags", "gombak ", "LRT", "black", "bag"),
			want:      85,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.target, tt.candidate); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

// Category, station and mode terms are symmetric. The keyword term is not
// required to be: each target keyword is checked against the candidate
// list, so a one-word target can match fewer times than a many-word one.
func TestScoreSymmetricTerms(t *testing.T) {
	a := item("Bags", "KL Sentral", "LRT")
	b := item("Bags", "Sentral", "LRT")

	if Score(a, b) != Score(b, a) {
		t.Errorf("category/station/mode terms should be symmetric: %d vs %d",
			Score(a, b), Score(b, a))
	}
}

// The keyword term counts matches per target keyword, so it is direction
// dependent. Documented behavior, not a bug.
func TestScoreKeywordAsymmetry(t *testing.T) {
	a := item("Bags", "", "", "bag", "handbag")
	b := item("Bags", "", "", "bag")

	// Both of a's keywords match b's single keyword by containment.
	if got := Score(a, b); got != 50 {
		t.Errorf("Score(a, b) = %d, want 50", got)
	}
	// b's single keyword matches once.
	if got := Score(b, a); got != 45 {
		t.Errorf("Score(b, a) = %d, want 45", got)
	}
}
