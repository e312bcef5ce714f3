package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/sukhmal/RummyScorer-sub000/internal/domain"
	"github.com/sukhmal/RummyScorer-sub000/internal/ports"
)

const storageListPageSize = 100

// GameStorage is the subset of runtime.NakamaModule the game repository needs.
type GameStorage interface {
	StorageRead(ctx context.Context, reads []*runtime.StorageRead) ([]*api.StorageObject, error)
	StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error)
	StorageList(ctx context.Context, callerID, userID, collection string, limit int, cursor string) ([]*api.StorageObject, string, error)
}

// NakamaGameRepository stores the games of one owner in Nakama storage, one
// object per game keyed by game id. Clients may read their own games but only
// the server writes them.
type NakamaGameRepository struct {
	storage GameStorage
	ownerID string
}

// NewNakamaGameRepository creates a repository scoped to ownerID.
func NewNakamaGameRepository(storage GameStorage, ownerID string) *NakamaGameRepository {
	return &NakamaGameRepository{storage: storage, ownerID: ownerID}
}

func (r *NakamaGameRepository) Save(ctx context.Context, game *domain.Game) error {
	if r.ownerID == "" {
		return errors.New("owner is required")
	}
	value, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}
	_, err = r.storage.StorageWrite(ctx, []*runtime.StorageWrite{{
		Collection:      GamesCollection,
		Key:             game.ID,
		UserID:          r.ownerID,
		Value:           string(value),
		PermissionRead:  runtime.STORAGE_PERMISSION_OWNER_READ,
		PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
	}})
	if err != nil {
		return fmt.Errorf("failed to write game %s: %w", game.ID, err)
	}
	return nil
}

func (r *NakamaGameRepository) Load(ctx context.Context, id string) (*domain.Game, error) {
	if id == "" {
		return nil, ports.ErrGameNotFound
	}
	objects, err := r.storage.StorageRead(ctx, []*runtime.StorageRead{{
		Collection: GamesCollection,
		Key:        id,
		UserID:     r.ownerID,
	}})
	if err != nil {
		return nil, fmt.Errorf("failed to read game %s: %w", id, err)
	}
	if len(objects) == 0 {
		return nil, ports.ErrGameNotFound
	}
	return decodeGame(objects[0])
}

// List returns the owner's games, most recently started first.
func (r *NakamaGameRepository) List(ctx context.Context, limit int) ([]ports.GameSummary, error) {
	var out []ports.GameSummary
	cursor := ""
	for {
		objects, next, err := r.storage.StorageList(ctx, "", r.ownerID, GamesCollection, storageListPageSize, cursor)
		if err != nil {
			return nil, fmt.Errorf("failed to list games: %w", err)
		}
		for _, obj := range objects {
			game, err := decodeGame(obj)
			if err != nil {
				return nil, err
			}
			out = append(out, ports.Summarize(game))
		}
		if next == "" || next == cursor {
			break
		}
		cursor = next
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func decodeGame(obj *api.StorageObject) (*domain.Game, error) {
	var game domain.Game
	if err := json.Unmarshal([]byte(obj.GetValue()), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game %s: %w", obj.GetKey(), err)
	}
	return &game, nil
}

var (
	_ ports.GameRepository = (*NakamaGameRepository)(nil)
	_ ports.GameLister     = (*NakamaGameRepository)(nil)
)
