package domain

import (
	"reflect"
	"testing"
)

func mustMeld(t *testing.T, codes string) Meld {
	t.Helper()
	m, ok := ClassifyMeld(mustHand(t, codes))
	if !ok {
		t.Fatalf("%s is not a meld", codes)
	}
	return m
}

func TestDeadwoodPoints(t *testing.T) {
	// K♦, 3♣ and a wild joker.
	dead := mustHand(t, "KD 3C 9H*")
	if got := DeadwoodPoints(dead); got != 13 {
		t.Fatalf("DeadwoodPoints() = %d, want 13", got)
	}
}

func TestValidateDeclaration(t *testing.T) {
	tests := []struct {
		name     string
		melds    []string
		deadwood string
		want     DeclarationResult
	}{
		{
			name:  "valid show",
			melds: []string{"AS 2S 3S", "5H 6H JK", "9C 9D 9S", "JD QD KD AD*"},
			want: DeclarationResult{
				IsValid: true, HasPureSequence: true, HasMinimumSequences: true, AllCardsMelded: true,
				Errors: []string{},
			},
		},
		{
			name:  "no pure sequence",
			melds: []string{"5H 6H JK", "8C JK 10C", "9C 9D 9S", "JD QD KD 2S*"},
			want: DeclarationResult{
				HasMinimumSequences: true, AllCardsMelded: true,
				Errors: []string{HintNeedPureSequence},
			},
		},
		{
			name:     "one sequence and deadwood",
			melds:    []string{"AS 2S 3S", "9C 9D 9S"},
			deadwood: "KD 3C 5H",
			want: DeclarationResult{
				HasPureSequence: true, DeadwoodPoints: 18,
				Errors: []string{HintNeedTwoSequences, "3 cards still unmelded"},
			},
		},
		{
			name:     "invalid meld counts as deadwood",
			melds:    []string{"AS 2S 3S", "4H 5H 6H", "9C 9D 8S"},
			deadwood: "",
			want: DeclarationResult{
				HasPureSequence: true, HasMinimumSequences: true, DeadwoodPoints: 26,
				Errors: []string{"3 cards still unmelded"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var melds []Meld
			for _, m := range tt.melds {
				hand := mustHand(t, m)
				melds = append(melds, Meld{Type: MeldSet, Cards: hand})
			}
			got := ValidateDeclaration(melds, mustHand(t, tt.deadwood))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ValidateDeclaration() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestValidateDeclarationClosingCard(t *testing.T) {
	melds := []Meld{
		mustMeld(t, "AS 2S 3S"),
		mustMeld(t, "5H 6H JK"),
		mustMeld(t, "9C 9D 9S"),
		mustMeld(t, "JD QD KD AD*"),
	}
	closing := Card{ID: "closing", Suit: SuitClubs, Rank: RankKing, Joker: JokerNone}

	res := ValidateDeclaration(melds, []Card{closing})
	if !res.IsValid {
		t.Fatalf("13 melded cards plus one discard must be valid: %+v", res)
	}
	if res.DeadwoodPoints != 0 {
		t.Fatalf("closing card must not count as deadwood, got %d", res.DeadwoodPoints)
	}
	if res.ClosingCard == nil || res.ClosingCard.ID != "closing" {
		t.Fatalf("ClosingCard = %v, want closing", res.ClosingCard)
	}

	res = ValidateDeclaration(melds[:3], []Card{closing})
	if res.IsValid || res.ClosingCard != nil {
		t.Fatalf("closing rule applies only with 13 melded cards: %+v", res)
	}
}

func TestValidateDeclarationValidityIff(t *testing.T) {
	melds := [][]Meld{
		{mustMeld(t, "AS 2S 3S"), mustMeld(t, "5H 6H JK")},
		{mustMeld(t, "AS 2S 3S"), mustMeld(t, "9C 9D 9S")},
		{mustMeld(t, "5H 6H JK"), mustMeld(t, "8C JK 10C")},
		{mustMeld(t, "AS 2S 3S"), mustMeld(t, "4D 5D 6D")},
	}
	deadwoods := [][]Card{nil, mustHand(t, "KD")}

	for _, ms := range melds {
		for _, dw := range deadwoods {
			res := ValidateDeclaration(ms, dw)
			want := res.HasPureSequence && res.HasMinimumSequences && len(dw) == 0
			if res.IsValid != want {
				t.Fatalf("IsValid = %v, want %v for %+v / %v", res.IsValid, want, ms, dw)
			}
		}
	}
}
