package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"
)

// rpcSettleGame pays out a Points game in chips. Every seat must belong to an
// account; a game is paid out at most once.
func rpcSettleGame(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}
	var req gameRequest
	if err := unmarshalPayload(payload, &req); err != nil {
		return "", err
	}

	unlock := gameLocks.Lock(userID + "/" + req.GameID)
	defer unlock()

	b := newBackend(nk)
	svc, _ := b.service(logger, userID)
	game, err := svc.Load(ctx, req.GameID)
	if err != nil {
		return "", toRuntimeError(err)
	}

	ids := make([]string, len(game.Players))
	for i, p := range game.Players {
		ids[i] = p.ID
	}
	names, err := b.profiles.DisplayNames(ctx, ids)
	if err != nil {
		logger.Error("SettleGame [User:%s, Game:%s]: account lookup failed: %v", userID, game.ID, err)
		return "", errInternal
	}
	for _, id := range ids {
		if _, ok := names[id]; !ok {
			return "", runtime.NewError("every player must have an account to settle chips", codeFailedPrecondition)
		}
	}

	res, err := svc.SettleChips(ctx, game, b.economy)
	if err != nil {
		logger.Warn("SettleGame [User:%s, Game:%s]: %v", userID, game.ID, err)
		return "", toRuntimeError(err)
	}

	out := settleResponse{
		GameID:         game.ID,
		AlreadySettled: res.AlreadySettled,
		Transfers:      make([]transferResponse, 0, len(res.Transfers)),
		Balances:       make(map[string]int64, len(ids)),
	}
	if res.PersistErr != nil {
		logger.Warn("SettleGame [User:%s, Game:%s]: %v", userID, game.ID, res.PersistErr)
		out.Warning = "game could not be closed; later rounds may still be recorded"
	}
	for _, t := range res.Transfers {
		out.Transfers = append(out.Transfers, transferResponse{UserID: t.UserID, Amount: t.Amount})
	}
	for _, id := range ids {
		balance, err := b.economy.GetBalance(ctx, id)
		if err != nil {
			logger.Warn("SettleGame [Game:%s]: balance of %s unavailable: %v", game.ID, id, err)
			continue
		}
		out.Balances[id] = balance
	}
	return marshalResponse(out)
}

// rpcGetChips returns the caller's chip balance.
func rpcGetChips(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}
	balance, err := newBackend(nk).economy.GetBalance(ctx, userID)
	if err != nil {
		logger.Error("GetChips [User:%s]: %v", userID, err)
		return "", errInternal
	}
	return marshalResponse(chipsResponse{Balance: balance})
}
