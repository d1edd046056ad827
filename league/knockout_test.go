package league

import (
	"errors"
	"testing"
)

func TestGenerateKnockoutPowerOfTwo(t *testing.T) {
	t.Parallel()

	draw, err := GenerateKnockout([]int{1, 2, 3, 4, 5, 6, 7, 8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draw.Rounds != 3 {
		t.Fatalf("expected 3 rounds, got %d", draw.Rounds)
	}
	if len(draw.Byes) != 0 {
		t.Fatalf("expected no byes, got %v", draw.Byes)
	}
	if len(draw.Fixtures) != 4 {
		t.Fatalf("expected 4 opening fixtures, got %d", len(draw.Fixtures))
	}
	// Top seed meets bottom seed.
	if draw.Fixtures[0].HomeTeamID != 1 || draw.Fixtures[0].AwayTeamID != 8 {
		t.Fatalf("unexpected first pairing: %+v", draw.Fixtures[0])
	}
	for _, f := range draw.Fixtures {
		if f.Round != 1 {
			t.Errorf("opening fixture in round %d", f.Round)
		}
	}
}

func TestGenerateKnockoutByes(t *testing.T) {
	t.Parallel()

	draw, err := GenerateKnockout([]int{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draw.Rounds != 3 {
		t.Fatalf("expected 3 rounds for 6 teams, got %d", draw.Rounds)
	}
	// Bracket of 8 with 6 teams: the top two seeds get byes.
	if len(draw.Byes) != 2 || draw.Byes[0] != 1 || draw.Byes[1] != 2 {
		t.Fatalf("expected byes for seeds 1 and 2, got %v", draw.Byes)
	}
	if len(draw.Fixtures) != 2 {
		t.Fatalf("expected 2 opening fixtures, got %d", len(draw.Fixtures))
	}

	playing := make(map[int]bool)
	for _, f := range draw.Fixtures {
		playing[f.HomeTeamID] = true
		playing[f.AwayTeamID] = true
	}
	for _, bye := range draw.Byes {
		if playing[bye] {
			t.Errorf("team %d has both a bye and an opening fixture", bye)
		}
	}
}

func TestGenerateKnockoutInsufficientTeams(t *testing.T) {
	t.Parallel()

	if _, err := GenerateKnockout([]int{9}); !errors.Is(err, ErrInsufficientTeams) {
		t.Fatalf("expected ErrInsufficientTeams, got %v", err)
	}
}
