package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"vsla-backend/internal/domain/user"
	"vsla-backend/pkg/id"
)

const tokenTTL = 24 * time.Hour

type Usecase struct {
	users  user.Repository
	secret []byte
}

func NewUsecase(users user.Repository, secret string) *Usecase {
	return &Usecase{users: users, secret: []byte(secret)}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

type LoginInput struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type UserDTO struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

type LoginDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// Claims carried in the bearer token. The middleware trusts these after
// signature verification; role changes take effect on the next login.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func toDTO(u *user.User) UserDTO {
	return UserDTO{
		UserID: u.UserID,
		Name:   u.Name,
		Phone:  u.Phone,
		Email:  u.Email,
		Role:   string(u.Role),
		Status: string(u.Status),
	}
}

// Register creates a member account with a bcrypt-hashed password.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*UserDTO, error) {
	if in.Name == "" || in.Phone == "" {
		return nil, fmt.Errorf("%w: name and phone are required", user.ErrValidation)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", user.ErrValidation)
	}

	if _, err := u.users.GetByPhone(ctx, in.Phone); err == nil {
		return nil, user.ErrDuplicatePhone
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if in.Email != "" {
		if _, err := u.users.GetByEmail(ctx, in.Email); err == nil {
			return nil, user.ErrDuplicateEmail
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	row := &user.User{
		UserID:       id.New(),
		Name:         in.Name,
		Phone:        in.Phone,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         user.RoleMember,
		Status:       user.StatusActive,
	}
	if err := u.users.Create(ctx, row); err != nil {
		return nil, err
	}
	dto := toDTO(row)
	return &dto, nil
}

// Login verifies credentials and issues a signed bearer token.
func (u *Usecase) Login(ctx context.Context, in LoginInput) (*LoginDTO, error) {
	row, err := u.users.GetByPhone(ctx, in.Phone)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if row.Status == user.StatusSuspended {
		return nil, user.ErrSuspended
	}
	if bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(in.Password)) != nil {
		return nil, user.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	claims := Claims{
		UserID: row.UserID,
		Role:   string(row.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   row.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.secret)
	if err != nil {
		return nil, err
	}
	return &LoginDTO{Token: token, User: toDTO(row)}, nil
}

// ParseToken validates a bearer token and returns its claims.
func (u *Usecase) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return u.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, user.ErrInvalidCredentials
	}
	return claims, nil
}
