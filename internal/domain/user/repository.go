package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	Save(ctx context.Context, u *User) error
	GetByUserID(ctx context.Context, userID string) (*User, error)
	GetByPhone(ctx context.Context, phone string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
}
