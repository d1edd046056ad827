package league

import (
	"errors"
	"reflect"
	"testing"
)

func TestGenerateFixturesRoundRobinCompleteness(t *testing.T) {
	t.Parallel()

	for _, n := range []int{2, 3, 4, 5, 8, 11, 16} {
		teamIDs := make([]int, n)
		for i := range teamIDs {
			teamIDs[i] = i + 1
		}

		drafts, err := GenerateFixtures(teamIDs)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}

		wantMatches := n * (n - 1) / 2
		if len(drafts) != wantMatches {
			t.Fatalf("n=%d: expected %d fixtures, got %d", n, wantMatches, len(drafts))
		}

		wantRounds := n - 1
		if n%2 != 0 {
			wantRounds = n
		}

		type pair struct{ a, b int }
		seen := make(map[pair]int)
		for _, d := range drafts {
			if d.HomeTeamID == d.AwayTeamID {
				t.Fatalf("n=%d: team %d plays itself", n, d.HomeTeamID)
			}
			if d.Round < 1 || d.Round > wantRounds {
				t.Fatalf("n=%d: round %d out of range [1,%d]", n, d.Round, wantRounds)
			}
			p := pair{d.HomeTeamID, d.AwayTeamID}
			if p.a > p.b {
				p.a, p.b = p.b, p.a
			}
			seen[p]++
		}
		for p, count := range seen {
			if count != 1 {
				t.Errorf("n=%d: pair %v appears %d times", n, p, count)
			}
		}
	}
}

func TestGenerateFixturesDeterminism(t *testing.T) {
	t.Parallel()

	teamIDs := []int{7, 3, 12, 9, 1}
	first, err := GenerateFixtures(teamIDs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := GenerateFixtures(teamIDs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two generations from the same input differ:\n%v\n%v", first, second)
	}
}

func TestGenerateFixturesFourTeams(t *testing.T) {
	t.Parallel()

	drafts, err := GenerateFixtures([]int{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drafts) != 6 {
		t.Fatalf("expected 6 fixtures, got %d", len(drafts))
	}

	perRound := make(map[int]int)
	appearances := make(map[int]int)
	for _, d := range drafts {
		perRound[d.Round]++
		appearances[d.HomeTeamID]++
		appearances[d.AwayTeamID]++
	}
	if len(perRound) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(perRound))
	}
	for round, count := range perRound {
		if count != 2 {
			t.Errorf("round %d has %d fixtures, want 2", round, count)
		}
	}
	for teamID, count := range appearances {
		if count != 3 {
			t.Errorf("team %d appears %d times, want 3", teamID, count)
		}
	}
}

func TestGenerateFixturesOddTeamCountGetsByeRounds(t *testing.T) {
	t.Parallel()

	drafts, err := GenerateFixtures([]int{1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drafts) != 3 {
		t.Fatalf("expected 3 fixtures, got %d", len(drafts))
	}
	// Odd n yields n rounds with exactly one match each.
	rounds := make(map[int]int)
	for _, d := range drafts {
		rounds[d.Round]++
	}
	if len(rounds) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(rounds))
	}
	for round, count := range rounds {
		if count != 1 {
			t.Errorf("round %d has %d fixtures, want 1", round, count)
		}
	}
}

func TestGenerateFixturesInsufficientTeams(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		teamIDs []int
	}{
		{"empty", nil},
		{"single", []int{1}},
		{"duplicates only", []int{5, 5, 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := GenerateFixtures(tc.teamIDs); !errors.Is(err, ErrInsufficientTeams) {
				t.Fatalf("expected ErrInsufficientTeams, got %v", err)
			}
		})
	}
}
