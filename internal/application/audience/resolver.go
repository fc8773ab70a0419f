package audience

import (
	"context"
	"fmt"

	"github.com/detailing-api/internal/domain"
)

// Resolver maps an audience selector to concrete recipient user IDs.
// Resolution is deterministic for a given directory snapshot and performs
// no writes.
type Resolver interface {
	Resolve(ctx context.Context, aud domain.Audience, selected []string) ([]string, error)
}

type directory interface {
	Scan(ctx context.Context) ([]domain.User, error)
}

type resolver struct {
	users directory
}

func NewResolver(users directory) Resolver {
	return &resolver{users: users}
}

// Resolve expands the selector against the user directory. A "selected"
// audience is taken verbatim and never cross-checked: an ID that no longer
// exists in the directory yields a notification with no live recipient,
// which is not an error.
func (r *resolver) Resolve(ctx context.Context, aud domain.Audience, selected []string) ([]string, error) {
	if !aud.Valid() {
		return nil, fmt.Errorf("unknown audience %q: %w", aud, domain.ErrBadRequest)
	}
	if aud == domain.AudienceSelected {
		return append([]string(nil), selected...), nil
	}

	users, err := r.users.Scan(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(users))
	for _, u := range users {
		switch aud {
		case domain.AudienceAll:
			ids = append(ids, u.UserID)
		case domain.AudienceCustomers:
			if isCustomer(u) {
				ids = append(ids, u.UserID)
			}
		case domain.AudienceStaff:
			if !isCustomer(u) {
				ids = append(ids, u.UserID)
			}
		}
	}
	return ids, nil
}

// isCustomer treats an absent role as the default customer role.
func isCustomer(u domain.User) bool {
	return u.Role == "" || u.Role == domain.RoleCustomer
}
