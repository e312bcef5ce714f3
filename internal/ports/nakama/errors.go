package nakama

import (
	"errors"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/sukhmal/RummyScorer-sub000/internal/app"
	"github.com/sukhmal/RummyScorer-sub000/internal/domain"
	"github.com/sukhmal/RummyScorer-sub000/internal/ports"
)

var (
	errUnauthenticated = runtime.NewError("user is not authenticated", codeUnauthenticated)
	errInvalidPayload  = runtime.NewError("invalid payload", codeInvalidArgument)
	errInternal        = runtime.NewError("internal error", codeInternal)
)

// toRuntimeError maps service and rule errors onto client-facing runtime
// errors. Anything unknown becomes an internal error.
func toRuntimeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ports.ErrGameNotFound), errors.Is(err, domain.ErrRoundNotFound):
		return runtime.NewError(err.Error(), codeNotFound)
	case errors.Is(err, domain.ErrGameCompleted),
		errors.Is(err, domain.ErrGameSettled),
		errors.Is(err, domain.ErrPlayerEliminated),
		errors.Is(err, app.ErrNotPointsGame),
		errors.Is(err, app.ErrNothingToSettle):
		return runtime.NewError(err.Error(), codeFailedPrecondition)
	case errors.Is(err, domain.ErrNoWinner),
		errors.Is(err, domain.ErrMultipleWinners),
		errors.Is(err, domain.ErrUnknownPlayer),
		errors.Is(err, domain.ErrDuplicatePlayer),
		errors.Is(err, domain.ErrNegativePoints),
		errors.Is(err, domain.ErrConflictingDeclaration),
		errors.Is(err, domain.ErrTooFewPlayers),
		errors.Is(err, domain.ErrInvalidConfig):
		return runtime.NewError(err.Error(), codeInvalidArgument)
	case errors.Is(err, app.ErrInvalidShareToken):
		return runtime.NewError("invalid share token", codeUnauthenticated)
	default:
		return errInternal
	}
}
