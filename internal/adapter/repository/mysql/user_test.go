package mysql

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	domain "vsla-backend/internal/domain/user"
	"vsla-backend/pkg/id"
)

func makeUser(userID, phone, email string) *domain.User {
	return &domain.User{
		UserID:       userID,
		Name:         "Achieng Otieno",
		Phone:        phone,
		Email:        email,
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhash",
		Role:         domain.RoleMember,
		Status:       domain.StatusActive,
	}
}

func TestUserCreateAndLookups(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	userID := id.New()
	u := makeUser(userID, "+254700000001", "achieng@example.com")
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	tests := []struct {
		name string
		get  func() (*domain.User, error)
	}{
		{"by user id", func() (*domain.User, error) { return repo.GetByUserID(ctx, userID) }},
		{"by phone", func() (*domain.User, error) { return repo.GetByPhone(ctx, "+254700000001") }},
		{"by email", func() (*domain.User, error) { return repo.GetByEmail(ctx, "achieng@example.com") }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.get()
			if err != nil {
				t.Fatalf("lookup: %v", err)
			}
			if got.UserID != userID {
				t.Errorf("wrong user: %+v", got)
			}
		})
	}

	if _, err := repo.GetByPhone(ctx, "+254799999999"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestUserSaveAndList(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u1 := makeUser(id.New(), "+254700000002", "")
	u2 := makeUser(id.New(), "+254700000003", "")
	for _, u := range []*domain.User{u1, u2} {
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	u1.Status = domain.StatusSuspended
	if err := repo.Save(ctx, u1); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByUserID(ctx, u1.UserID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if got.Status != domain.StatusSuspended {
		t.Errorf("suspension not persisted: %+v", got)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d users, want 2", len(all))
	}
}
