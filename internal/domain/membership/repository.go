package membership

import "context"

type Repository interface {
	Create(ctx context.Context, m *Membership) error
	Save(ctx context.Context, m *Membership) error
	// GetActive returns the single active membership for the pair, or
	// ErrRecordNotFound.
	GetActive(ctx context.Context, userID, groupID string) (*Membership, error)
	// GetByUserAndGroup returns the pair's membership row regardless of
	// status. The unique index guarantees at most one row per pair.
	GetByUserAndGroup(ctx context.Context, userID, groupID string) (*Membership, error)
	ListByGroup(ctx context.Context, groupID string) ([]Membership, error)
	CountActiveByGroup(ctx context.Context, groupID string) (int64, error)
	// GroupIDsByUserAndRoles lists groups where the user holds one of the
	// given roles with an active membership.
	GroupIDsByUserAndRoles(ctx context.Context, userID string, roles []Role) ([]string, error)
}
