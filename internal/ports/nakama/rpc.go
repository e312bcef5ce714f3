package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/sukhmal/RummyScorer-sub000/internal/app"
	"github.com/sukhmal/RummyScorer-sub000/internal/config"
	"github.com/sukhmal/RummyScorer-sub000/internal/domain"
	"github.com/sukhmal/RummyScorer-sub000/internal/ports"
)

const maxListLimit = 100

type rpcFunc func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error)

// Notifier is the subset of runtime.NakamaModule used to push game events.
type Notifier interface {
	NotificationSend(ctx context.Context, userID, subject string, content map[string]interface{}, code int, sender string, persistent bool) error
}

// backend bundles the adapters an RPC works with.
type backend struct {
	storage  GameStorage
	profiles ports.ProfilePort
	economy  ports.EconomyPort
	notifier Notifier
}

var (
	newBackend = func(nk runtime.NakamaModule) backend {
		return backend{
			storage:  nk,
			profiles: NewNakamaAccountAdapter(nk),
			economy:  NewNakamaEconomyAdapter(nk),
			notifier: nk,
		}
	}
	gameLocks = newKeyedMutex()
)

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	rpcs := []struct {
		id string
		fn rpcFunc
	}{
		{RpcCreateGame, rpcCreateGame},
		{RpcGetGame, rpcGetGame},
		{RpcAddRound, rpcAddRound},
		{RpcUpdateRound, rpcUpdateRound},
		{RpcListGames, rpcListGames},
		{RpcArrangeHand, rpcArrangeHand},
		{RpcValidateDeclaration, rpcValidateDeclaration},
		{RpcShareGame, rpcShareGame},
		{RpcViewSharedGame, rpcViewSharedGame},
		{RpcSettleGame, rpcSettleGame},
		{RpcGetChips, rpcGetChips},
	}
	for _, r := range rpcs {
		if err := initializer.RegisterRpc(r.id, r.fn); err != nil {
			return err
		}
	}
	return nil
}

func callerID(ctx context.Context) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", errUnauthenticated
	}
	return userID, nil
}

func (b backend) service(logger runtime.Logger, ownerID string) (*app.Service, *NakamaGameRepository) {
	repo := NewNakamaGameRepository(b.storage, ownerID)
	return app.NewService(repo, newServiceLogger(logger)), repo
}

func rpcCreateGame(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}
	var req createGameRequest
	if err := unmarshalPayload(payload, &req); err != nil {
		return "", err
	}

	b := newBackend(nk)
	seats := seatsFromRequest(req.Players)
	fillSeatNames(ctx, logger, b.profiles, seats)

	svc, _ := b.service(logger, userID)
	game, res, err := svc.StartGame(ctx, req.Name, config.ApplyDefaults(req.Config, req.Preset), seats)
	if err != nil {
		logger.Warn("CreateGame [User:%s]: rejected: %v", userID, err)
		return "", toRuntimeError(err)
	}

	b.notify(ctx, logger, userID, game, res.Events)
	return marshalResponse(newGameResponse(game, res))
}

func rpcGetGame(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}
	var req gameRequest
	if err := unmarshalPayload(payload, &req); err != nil {
		return "", err
	}

	svc, _ := newBackend(nk).service(logger, userID)
	game, err := svc.Load(ctx, req.GameID)
	if err != nil {
		return "", toRuntimeError(err)
	}
	return marshalResponse(newGameResponse(game, app.Result{}))
}

func rpcAddRound(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return submitRound(ctx, logger, nk, payload, false)
}

func rpcUpdateRound(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return submitRound(ctx, logger, nk, payload, true)
}

// submitRound loads the game, applies the round and saves it under the game's
// lock so concurrent submissions cannot overwrite each other.
func submitRound(ctx context.Context, logger runtime.Logger, nk runtime.NakamaModule, payload string, update bool) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}
	var req roundRequest
	if err := unmarshalPayload(payload, &req); err != nil {
		return "", err
	}
	if update && req.RoundID == "" {
		return "", runtime.NewError("roundId is required", codeInvalidArgument)
	}

	unlock := gameLocks.Lock(userID + "/" + req.GameID)
	defer unlock()

	b := newBackend(nk)
	svc, _ := b.service(logger, userID)
	game, err := svc.Load(ctx, req.GameID)
	if err != nil {
		return "", toRuntimeError(err)
	}

	var res app.Result
	if update {
		res, err = svc.UpdateRound(ctx, game, req.RoundID, req.Scores)
	} else {
		res, err = svc.AddRound(ctx, game, req.Scores)
	}
	if err != nil {
		logger.Debug("Round [User:%s, Game:%s]: rejected: %v", userID, game.ID, err)
		return "", toRuntimeError(err)
	}
	if res.PersistErr != nil {
		logger.Error("Round [User:%s, Game:%s]: %v", userID, game.ID, res.PersistErr)
	}

	b.notify(ctx, logger, userID, game, res.Events)
	return marshalResponse(newGameResponse(game, res))
}

func rpcListGames(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}
	var req listRequest
	if payload != "" {
		if err := unmarshalPayload(payload, &req); err != nil {
			return "", err
		}
	}
	limit := req.Limit
	if limit <= 0 {
		limit = config.GetListLimit()
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	_, repo := newBackend(nk).service(logger, userID)
	games, err := repo.List(ctx, limit)
	if err != nil {
		logger.Error("ListGames [User:%s]: %v", userID, err)
		return "", errInternal
	}
	if games == nil {
		games = []ports.GameSummary{}
	}
	return marshalResponse(listResponse{Games: games})
}

// fillSeatNames names unnamed seats that belong to accounts. Lookup failures
// leave the default names in place.
func fillSeatNames(ctx context.Context, logger runtime.Logger, profiles ports.ProfilePort, seats []app.Seat) {
	var ids []string
	for _, s := range seats {
		if s.Name == "" && s.ID != "" {
			ids = append(ids, s.ID)
		}
	}
	if len(ids) == 0 {
		return
	}
	names, err := profiles.DisplayNames(ctx, ids)
	if err != nil {
		logger.Warn("Could not resolve player names: %v", err)
		return
	}
	for i := range seats {
		if seats[i].Name == "" {
			seats[i].Name = names[seats[i].ID]
		}
	}
}

// notify pushes events to the owner and to every seated account.
func (b backend) notify(ctx context.Context, logger runtime.Logger, ownerID string, game *domain.Game, events []app.Event) {
	if b.notifier == nil || len(events) == 0 {
		return
	}
	members := []string{ownerID}
	seatIDs := make([]string, 0, len(game.Players))
	for _, p := range game.Players {
		if p.ID != ownerID {
			seatIDs = append(seatIDs, p.ID)
		}
	}
	accounts, err := b.profiles.DisplayNames(ctx, seatIDs)
	if err != nil {
		logger.Warn("Notify [Game:%s]: could not resolve seat accounts: %v", game.ID, err)
	}
	for _, id := range seatIDs {
		if _, ok := accounts[id]; ok {
			members = append(members, id)
		}
	}

	for _, ev := range events {
		recipients := members
		if len(ev.Recipients) > 0 {
			recipients = ev.Recipients
		}
		content := map[string]interface{}{
			"gameId":  game.ID,
			"kind":    string(ev.Kind),
			"payload": ev.Payload,
		}
		for _, uid := range recipients {
			if err := b.notifier.NotificationSend(ctx, uid, string(ev.Kind), content, NotificationCodeGameEvent, "", false); err != nil {
				logger.Warn("Notify [Game:%s]: failed to send %s to %s: %v", game.ID, ev.Kind, uid, err)
			}
		}
	}
}
