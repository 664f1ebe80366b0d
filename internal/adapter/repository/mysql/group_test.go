package mysql

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	domain "vsla-backend/internal/domain/group"
	"vsla-backend/pkg/id"
)

func makeGroup(groupID, name string) *domain.Group {
	return &domain.Group{
		GroupID:             groupID,
		Name:                name,
		Location:            "Kisumu",
		DefaultInterestRate: dec("5.00"),
		MaxLoanAmount:       dec("500000.00"),
		MaxMembers:          30,
		MeetingFrequency:    domain.MeetingWeekly,
		Status:              domain.StatusActive,
	}
}

func TestGroupCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	groupID := id.New()
	if err := repo.Create(ctx, makeGroup(groupID, "Umoja Savings")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByGroupID(ctx, groupID)
	if err != nil {
		t.Fatalf("GetByGroupID: %v", err)
	}
	if got.Name != "Umoja Savings" || !got.MaxLoanAmount.Equal(dec("500000.00")) {
		t.Errorf("unexpected group: %+v", got)
	}

	byName, err := repo.GetByName(ctx, "Umoja Savings")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if byName.GroupID != groupID {
		t.Errorf("GetByName returned wrong group: %s", byName.GroupID)
	}

	if _, err := repo.GetByName(ctx, "No Such Group"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestGroupNameFreedByArchive(t *testing.T) {
	db := openTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	old := makeGroup(id.New(), "Tujenge")
	if err := repo.Create(ctx, old); err != nil {
		t.Fatalf("Create: %v", err)
	}
	old.Status = domain.StatusArchived
	if err := repo.Save(ctx, old); err != nil {
		t.Fatalf("Save archive: %v", err)
	}

	// the archived group no longer claims the name
	if _, err := repo.GetByName(ctx, "Tujenge"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for archived name, got %v", err)
	}

	// and a new active group may take it
	replacementID := id.New()
	if err := repo.Create(ctx, makeGroup(replacementID, "Tujenge")); err != nil {
		t.Fatalf("Create with reused name: %v", err)
	}
	got, err := repo.GetByName(ctx, "Tujenge")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if got.GroupID != replacementID {
		t.Fatalf("GetByName returned %s, want the new active group", got.GroupID)
	}
}

func TestGroupSaveAndList(t *testing.T) {
	db := openTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	g1 := makeGroup(id.New(), "Harambee Circle")
	g2 := makeGroup(id.New(), "Tumaini Fund")
	for _, g := range []*domain.Group{g1, g2} {
		if err := repo.Create(ctx, g); err != nil {
			t.Fatalf("Create %s: %v", g.Name, err)
		}
	}

	g1.Status = domain.StatusArchived
	if err := repo.Save(ctx, g1); err != nil {
		t.Fatalf("Save: %v", err)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d groups, want 2", len(all))
	}
	statuses := map[string]domain.Status{}
	for _, g := range all {
		statuses[g.Name] = g.Status
	}
	if statuses["Harambee Circle"] != domain.StatusArchived {
		t.Errorf("archive not persisted: %+v", statuses)
	}
}
