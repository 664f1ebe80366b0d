package mysql

import (
	"context"

	"gorm.io/gorm"

	groupDomain "vsla-backend/internal/domain/group"
)

type GroupRepository struct{ db *gorm.DB }

func NewGroupRepository(db *gorm.DB) *GroupRepository { return &GroupRepository{db: db} }

func (r *GroupRepository) Create(ctx context.Context, g *groupDomain.Group) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *GroupRepository) Save(ctx context.Context, g *groupDomain.Group) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *GroupRepository) GetByGroupID(ctx context.Context, groupID string) (*groupDomain.Group, error) {
	var out groupDomain.Group
	res := r.db.WithContext(ctx).Where("group_id = ?", groupID).First(&out)
	return &out, res.Error
}

// GetByName looks up an active group by name. Archived groups do not reserve
// their name, so only the active set is searched.
func (r *GroupRepository) GetByName(ctx context.Context, name string) (*groupDomain.Group, error) {
	var out groupDomain.Group
	res := r.db.WithContext(ctx).
		Where("name = ? AND status = ?", name, groupDomain.StatusActive).
		First(&out)
	return &out, res.Error
}

func (r *GroupRepository) List(ctx context.Context) ([]groupDomain.Group, error) {
	var out []groupDomain.Group
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}
