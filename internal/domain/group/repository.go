package group

import "context"

type Repository interface {
	Create(ctx context.Context, g *Group) error
	Save(ctx context.Context, g *Group) error
	GetByGroupID(ctx context.Context, groupID string) (*Group, error)
	// GetByName searches active groups only; an archived group does not
	// reserve its name.
	GetByName(ctx context.Context, name string) (*Group, error)
	List(ctx context.Context) ([]Group, error)
}
