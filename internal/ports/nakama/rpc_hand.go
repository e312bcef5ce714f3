package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/sukhmal/RummyScorer-sub000/internal/arranger"
	"github.com/sukhmal/RummyScorer-sub000/internal/domain"
)

// maxHandSize bounds the arranger's search. A hand is 13 cards plus the drawn
// one; anything larger is not a rummy hand.
const maxHandSize = 21

// rpcArrangeHand returns the best arrangement of a hand and its declaration
// check.
//
// Payload: {"cards": ["AH", "2H", "JK", ...], "wildRank": "7"}
func rpcArrangeHand(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req handRequest
	if err := unmarshalPayload(payload, &req); err != nil {
		return "", err
	}
	if len(req.Cards) > maxHandSize {
		return "", runtime.NewError("too many cards", codeInvalidArgument)
	}
	wild, err := parseWildRank(req.WildRank)
	if err != nil {
		return "", runtime.NewError(err.Error(), codeInvalidArgument)
	}
	next := 0
	hand, err := parseCards(req.Cards, &next, wild)
	if err != nil {
		return "", runtime.NewError(err.Error(), codeInvalidArgument)
	}

	return marshalResponse(arranger.Analyze(hand))
}

// rpcValidateDeclaration checks a show exactly as the player grouped it.
// Groups that do not form a meld count as deadwood.
//
// Payload: {"melds": [["AH","2H","3H"], ...], "deadwood": ["KC"], "wildRank": "7"}
func rpcValidateDeclaration(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req declarationRequest
	if err := unmarshalPayload(payload, &req); err != nil {
		return "", err
	}
	wild, err := parseWildRank(req.WildRank)
	if err != nil {
		return "", runtime.NewError(err.Error(), codeInvalidArgument)
	}

	next := 0
	var hand []domain.Card
	grouping := domain.NewGrouping()
	for i, codes := range req.Melds {
		cards, err := parseCards(codes, &next, wild)
		if err != nil {
			return "", runtime.NewError(err.Error(), codeInvalidArgument)
		}
		grouping.Assign(i, cards...)
		hand = append(hand, cards...)
	}
	loose, err := parseCards(req.Deadwood, &next, wild)
	if err != nil {
		return "", runtime.NewError(err.Error(), codeInvalidArgument)
	}
	hand = append(hand, loose...)

	melds, deadwood := grouping.Partition(hand)
	return marshalResponse(domain.ValidateDeclaration(melds, deadwood))
}
