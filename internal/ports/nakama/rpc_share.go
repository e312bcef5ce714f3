package nakama

import (
	"context"
	"database/sql"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/sukhmal/RummyScorer-sub000/internal/app"
)

// shareService is set by InitModule when a share secret is configured.
var shareService *app.ShareService

// rpcShareGame issues a read-only scoreboard token for one of the caller's
// games.
func rpcShareGame(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}
	if shareService == nil {
		return "", runtime.NewError("sharing is not configured", codeFailedPrecondition)
	}
	var req gameRequest
	if err := unmarshalPayload(payload, &req); err != nil {
		return "", err
	}

	svc, _ := newBackend(nk).service(logger, userID)
	if _, err := svc.Load(ctx, req.GameID); err != nil {
		return "", toRuntimeError(err)
	}

	token, err := shareService.GenerateToken(req.GameID, userID)
	if err != nil {
		logger.Error("ShareGame [User:%s]: failed to sign token: %v", userID, err)
		return "", errInternal
	}
	claims, err := shareService.ParseToken(token)
	if err != nil {
		logger.Error("ShareGame [User:%s]: issued token does not verify: %v", userID, err)
		return "", errInternal
	}

	return marshalResponse(shareResponse{Token: token, ExpiresAt: time.Unix(claims.ExpiresAt, 0).UTC()})
}

// rpcViewSharedGame returns the scoreboard a share token points to.
func rpcViewSharedGame(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	if shareService == nil {
		return "", runtime.NewError("sharing is not configured", codeFailedPrecondition)
	}
	var req shareRequest
	if err := unmarshalPayload(payload, &req); err != nil {
		return "", err
	}

	claims, err := shareService.ParseToken(req.Token)
	if err != nil {
		logger.Debug("ViewSharedGame: %v", err)
		return "", toRuntimeError(err)
	}

	svc, _ := newBackend(nk).service(logger, claims.OwnerID)
	game, err := svc.Load(ctx, claims.GameID)
	if err != nil {
		return "", toRuntimeError(err)
	}
	return marshalResponse(newGameResponse(game, app.Result{}))
}
