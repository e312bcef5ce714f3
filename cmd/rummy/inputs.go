package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sukhmal/RummyScorer-sub000/internal/domain"
)

// parseScores reads round results written as player=result, where result is
// a point count, "declared", "drop", "middle-drop" or "invalid:N". Players
// are matched by id or by case-insensitive name.
func parseScores(game *domain.Game, args []string) ([]domain.ScoreInput, error) {
	inputs := make([]domain.ScoreInput, 0, len(args))
	for _, arg := range args {
		who, result, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("%q: want player=result", arg)
		}
		id, err := resolvePlayer(game, who)
		if err != nil {
			return nil, err
		}

		in := domain.ScoreInput{PlayerID: id}
		switch result = strings.ToLower(strings.TrimSpace(result)); {
		case result == "declared" || result == "d":
			in.IsDeclared = true
		case result == "drop":
			in.Points = game.Config.DropPenalty(domain.DropFirst)
		case result == "middle-drop":
			in.Points = game.Config.DropPenalty(domain.DropMiddle)
		case strings.HasPrefix(result, "invalid"):
			in.HasInvalidDeclaration = true
			if _, pts, ok := strings.Cut(result, ":"); ok {
				if in.Points, err = strconv.Atoi(pts); err != nil {
					return nil, fmt.Errorf("%q: bad points", arg)
				}
			}
		default:
			if in.Points, err = strconv.Atoi(result); err != nil {
				return nil, fmt.Errorf("%q: bad points", arg)
			}
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func resolvePlayer(game *domain.Game, who string) (string, error) {
	who = strings.TrimSpace(who)
	if p, ok := game.Player(who); ok {
		return p.ID, nil
	}
	for _, p := range game.Players {
		if strings.EqualFold(p.Name, who) {
			return p.ID, nil
		}
	}
	return "", fmt.Errorf("unknown player %q", who)
}
