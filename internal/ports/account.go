package ports

import "context"

// ProfilePort looks up player accounts.
type ProfilePort interface {
	// DisplayNames returns the display name of every id that belongs to an
	// existing account. Unknown ids are absent from the map.
	DisplayNames(ctx context.Context, userIDs []string) (map[string]string, error)
}
