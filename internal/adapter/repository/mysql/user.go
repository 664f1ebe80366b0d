package mysql

import (
	"context"

	"gorm.io/gorm"

	userDomain "vsla-backend/internal/domain/user"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) Save(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*userDomain.User, error) {
	return r.getBy(ctx, "user_id", userID)
}

func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*userDomain.User, error) {
	return r.getBy(ctx, "phone", phone)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *UserRepository) getBy(ctx context.Context, column, value string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where(column+" = ?", value).First(&out)
	return &out, res.Error
}

func (r *UserRepository) List(ctx context.Context) ([]userDomain.User, error) {
	var out []userDomain.User
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}
