package nakama

import (
	"context"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/api"

	"github.com/sukhmal/RummyScorer-sub000/internal/ports"
)

// UserDirectory is the subset of runtime.NakamaModule used to look up users.
type UserDirectory interface {
	UsersGetId(ctx context.Context, userIDs []string, facebookIDs []string) ([]*api.User, error)
}

// NakamaAccountAdapter implements ports.ProfilePort using Nakama's user API.
type NakamaAccountAdapter struct {
	users UserDirectory
}

// NewNakamaAccountAdapter creates a new account adapter.
func NewNakamaAccountAdapter(users UserDirectory) *NakamaAccountAdapter {
	return &NakamaAccountAdapter{users: users}
}

// DisplayNames resolves user ids to display names, falling back to the
// username when no display name is set. Ids that are not account ids, such as
// the generated ids of guest players, are skipped.
func (a *NakamaAccountAdapter) DisplayNames(ctx context.Context, userIDs []string) (map[string]string, error) {
	out := make(map[string]string, len(userIDs))
	ids := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		if _, err := uuid.Parse(id); err == nil {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return out, nil
	}
	users, err := a.users.UsersGetId(ctx, ids, nil)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		name := u.GetDisplayName()
		if name == "" {
			name = u.GetUsername()
		}
		out[u.GetId()] = name
	}
	return out, nil
}

var _ ports.ProfilePort = (*NakamaAccountAdapter)(nil)
