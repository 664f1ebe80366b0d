package mysql

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	contributionDomain "vsla-backend/internal/domain/contribution"
)

type ContributionRepository struct{ db *gorm.DB }

func NewContributionRepository(db *gorm.DB) *ContributionRepository {
	return &ContributionRepository{db: db}
}

func (r *ContributionRepository) Create(ctx context.Context, c *contributionDomain.Contribution) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContributionRepository) ListByGroup(ctx context.Context, groupID string) ([]contributionDomain.Contribution, error) {
	return r.listBy(ctx, "group_id", groupID)
}

func (r *ContributionRepository) ListByUser(ctx context.Context, userID string) ([]contributionDomain.Contribution, error) {
	return r.listBy(ctx, "user_id", userID)
}

func (r *ContributionRepository) listBy(ctx context.Context, column, value string) ([]contributionDomain.Contribution, error) {
	var out []contributionDomain.Contribution
	err := r.db.WithContext(ctx).
		Where(column+" = ?", value).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *ContributionRepository) SumByGroup(ctx context.Context, groupID string) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&contributionDomain.Contribution{}).
		Select("SUM(amount)").
		Where("group_id = ?", groupID).
		Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}
