package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	domain "vsla-backend/internal/domain/user"
	"vsla-backend/internal/testutil/usermock"
)

const secret = "test-secret"

func TestRegister_And_Login_RoundTrip(t *testing.T) {
	var stored *domain.User
	users := &usermock.Repo{
		GetByPhoneFn: func(ctx context.Context, phone string) (*domain.User, error) {
			if stored != nil && stored.Phone == phone {
				return stored, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		GetByEmailFn: func(context.Context, string) (*domain.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(ctx context.Context, u *domain.User) error {
			stored = u
			return nil
		},
	}
	uc := NewUsecase(users, secret)
	ctx := context.Background()

	dto, err := uc.Register(ctx, RegisterInput{Name: "Amina", Phone: "+250788000001", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Register err: %v", err)
	}
	if dto.Role != string(domain.RoleMember) || dto.Status != string(domain.StatusActive) {
		t.Fatalf("dto: %+v", dto)
	}
	if stored.PasswordHash == "correct horse" || stored.PasswordHash == "" {
		t.Fatal("password stored unhashed")
	}

	login, err := uc.Login(ctx, LoginInput{Phone: "+250788000001", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if login.Token == "" {
		t.Fatal("empty token")
	}

	claims, err := uc.ParseToken(login.Token)
	if err != nil {
		t.Fatalf("ParseToken err: %v", err)
	}
	if claims.UserID != stored.UserID || claims.Role != string(domain.RoleMember) {
		t.Fatalf("claims: %+v", claims)
	}

	if _, err := uc.Login(ctx, LoginInput{Phone: "+250788000001", Password: "wrong"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: want ErrInvalidCredentials, got %v", err)
	}
}

func TestRegister_Rejections(t *testing.T) {
	users := &usermock.Repo{
		GetByPhoneFn: func(context.Context, string) (*domain.User, error) {
			return &domain.User{Phone: "taken"}, nil
		},
	}
	uc := NewUsecase(users, secret)
	ctx := context.Background()

	if _, err := uc.Register(ctx, RegisterInput{Phone: "x", Password: "longenough"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("missing name: got %v", err)
	}
	if _, err := uc.Register(ctx, RegisterInput{Name: "A", Phone: "x", Password: "short"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("short password: got %v", err)
	}
	if _, err := uc.Register(ctx, RegisterInput{Name: "A", Phone: "taken", Password: "longenough"}); !errors.Is(err, domain.ErrDuplicatePhone) {
		t.Fatalf("duplicate phone: got %v", err)
	}
}

func TestLogin_Suspended(t *testing.T) {
	users := &usermock.Repo{
		GetByPhoneFn: func(context.Context, string) (*domain.User, error) {
			return &domain.User{UserID: "u-1", Status: domain.StatusSuspended}, nil
		},
	}
	uc := NewUsecase(users, secret)
	if _, err := uc.Login(context.Background(), LoginInput{Phone: "p", Password: "pw"}); !errors.Is(err, domain.ErrSuspended) {
		t.Fatalf("want ErrSuspended, got %v", err)
	}
}

func TestParseToken_GarbageAndWrongKey(t *testing.T) {
	uc := NewUsecase(&usermock.Repo{}, secret)
	if _, err := uc.ParseToken("not-a-token"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("garbage token: got %v", err)
	}

	other := NewUsecase(&usermock.Repo{
		GetByPhoneFn: func(context.Context, string) (*domain.User, error) {
			return &domain.User{UserID: "u-1", Role: domain.RoleAdmin, Status: domain.StatusActive, PasswordHash: hash(t, "pw")}, nil
		},
	}, "different-secret")
	login, err := other.Login(context.Background(), LoginInput{Phone: "p", Password: "pw"})
	if err != nil {
		t.Fatalf("login err: %v", err)
	}
	if _, err := uc.ParseToken(login.Token); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("cross-key token: got %v", err)
	}
}

func hash(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(h)
}
