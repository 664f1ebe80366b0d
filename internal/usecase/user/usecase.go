package user

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"vsla-backend/internal/domain/user"
)

type Usecase struct{ repo user.Repository }

func NewUsecase(r user.Repository) *Usecase { return &Usecase{repo: r} }

type UserDTO struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateUserInput struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

func toDTO(u *user.User) UserDTO {
	return UserDTO{
		UserID:    u.UserID,
		Name:      u.Name,
		Phone:     u.Phone,
		Email:     u.Email,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
	}
}

func (u *Usecase) Get(ctx context.Context, userID string) (*UserDTO, error) {
	row, err := u.repo.GetByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	dto := toDTO(row)
	return &dto, nil
}

func (u *Usecase) List(ctx context.Context) ([]UserDTO, error) {
	rows, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i]))
	}
	return out, nil
}

func (u *Usecase) Update(ctx context.Context, userID string, in UpdateUserInput) (*UserDTO, error) {
	row, err := u.repo.GetByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		row.Name = *in.Name
	}
	if in.Email != nil {
		row.Email = *in.Email
	}
	if err := u.repo.Save(ctx, row); err != nil {
		return nil, err
	}
	dto := toDTO(row)
	return &dto, nil
}

func (u *Usecase) setStatus(ctx context.Context, userID string, status user.Status) (*UserDTO, error) {
	row, err := u.repo.GetByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	row.Status = status
	if err := u.repo.Save(ctx, row); err != nil {
		return nil, err
	}
	dto := toDTO(row)
	return &dto, nil
}

// Suspend blocks the user from logging in; Activate reverses it.
func (u *Usecase) Suspend(ctx context.Context, userID string) (*UserDTO, error) {
	return u.setStatus(ctx, userID, user.StatusSuspended)
}

func (u *Usecase) Activate(ctx context.Context, userID string) (*UserDTO, error) {
	return u.setStatus(ctx, userID, user.StatusActive)
}
