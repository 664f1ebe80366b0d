package mysql

import (
	"context"

	"gorm.io/gorm"

	membershipDomain "vsla-backend/internal/domain/membership"
)

type MembershipRepository struct{ db *gorm.DB }

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) Create(ctx context.Context, m *membershipDomain.Membership) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MembershipRepository) Save(ctx context.Context, m *membershipDomain.Membership) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *MembershipRepository) GetActive(ctx context.Context, userID, groupID string) (*membershipDomain.Membership, error) {
	var out membershipDomain.Membership
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND group_id = ? AND status = ?", userID, groupID, membershipDomain.StatusActive).
		First(&out)
	return &out, res.Error
}

func (r *MembershipRepository) GetByUserAndGroup(ctx context.Context, userID, groupID string) (*membershipDomain.Membership, error) {
	var out membershipDomain.Membership
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND group_id = ?", userID, groupID).
		First(&out)
	return &out, res.Error
}

func (r *MembershipRepository) ListByGroup(ctx context.Context, groupID string) ([]membershipDomain.Membership, error) {
	var out []membershipDomain.Membership
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("joined_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *MembershipRepository) CountActiveByGroup(ctx context.Context, groupID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&membershipDomain.Membership{}).
		Where("group_id = ? AND status = ?", groupID, membershipDomain.StatusActive).
		Count(&n).Error
	return n, err
}

func (r *MembershipRepository) GroupIDsByUserAndRoles(ctx context.Context, userID string, roles []membershipDomain.Role) ([]string, error) {
	var out []string
	err := r.db.WithContext(ctx).Model(&membershipDomain.Membership{}).
		Where("user_id = ? AND role IN ? AND status = ?", userID, roles, membershipDomain.StatusActive).
		Pluck("group_id", &out).Error
	return out, err
}
