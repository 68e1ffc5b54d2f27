package lookup

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/alexpaden/fartcaster/internal/errors"
	"github.com/alexpaden/fartcaster/internal/model"
)

// DefaultLimit is the number of candidates requested from the directory.
const DefaultLimit = 5

// Directory searches the user directory, returning candidates in ranked order.
type Directory interface {
	SearchUsers(ctx context.Context, q string, limit int) ([]model.User, error)
}

type Service struct {
	dir   Directory
	limit int
}

func NewService(dir Directory, limit int) *Service {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Service{dir: dir, limit: limit}
}

// Find resolves username to a single profile. An exact case-insensitive username
// match wins; otherwise the directory's first candidate is returned.
func (s *Service) Find(ctx context.Context, username string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.ErrMissingParameter
	}

	users, err := s.dir.SearchUsers(ctx, username, s.limit)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, errors.ErrNotFound
	}

	selected := Select(users, username)
	log.Ctx(ctx).Debug().Str("query", username).Str("username", selected.Username).Int("candidates", len(users)).Msg("user resolved")
	return &selected, nil
}

// Select picks the candidate whose username equals username ignoring case, falling
// back to users[0]. users must be non-empty.
func Select(users []model.User, username string) model.User {
	for _, u := range users {
		if strings.EqualFold(u.Username, username) {
			return u
		}
	}
	return users[0]
}
