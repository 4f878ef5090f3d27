package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	repos "github.com/yungbote/carprice-backend/internal/data/repos/account"
	"github.com/yungbote/carprice-backend/internal/data/repos/testutil"
	types "github.com/yungbote/carprice-backend/internal/domain"
	"github.com/yungbote/carprice-backend/internal/domain/account"
)

func newUserFixture(t *testing.T) (UserService, repos.AccountRepo, *gorm.DB) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	accounts := repos.NewAccountRepo(tx, log)
	return NewUserService(tx, log, accounts), accounts, tx
}

func TestUserDeactivateFreesEmail(t *testing.T) {
	svc, accounts, tx := newUserFixture(t)
	ctx := context.Background()

	seeded := testutil.SeedAccount(t, ctx, tx, "leaver@example.com", "leaver")

	if err := svc.Deactivate(ctx, seeded.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	if _, err := svc.GetByEmail(ctx, "leaver@example.com"); !errors.Is(err, account.ErrAccountNotFound) {
		t.Fatalf("err = %v, want ErrAccountNotFound after deactivation", err)
	}

	free, err := accounts.ExistsActiveByEmail(ctx, nil, "leaver@example.com")
	if err != nil {
		t.Fatalf("ExistsActiveByEmail: %v", err)
	}
	if free {
		t.Fatal("deactivated email must not count as taken")
	}

	// Double deactivation is a not-found, not a silent no-op.
	if err := svc.Deactivate(ctx, seeded.ID); !errors.Is(err, account.ErrAccountNotFound) {
		t.Fatalf("err = %v, want ErrAccountNotFound", err)
	}
}

func TestUserUpdateRole(t *testing.T) {
	svc, _, tx := newUserFixture(t)
	ctx := context.Background()

	seeded := testutil.SeedAccount(t, ctx, tx, "promo@example.com", "promo")

	updated, err := svc.UpdateRole(ctx, seeded.ID, types.RoleAdmin)
	if err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	if updated.Role != types.RoleAdmin {
		t.Fatalf("role = %s, want ADMIN", updated.Role)
	}

	if _, err := svc.UpdateRole(ctx, seeded.ID, types.Role("OWNER")); err == nil {
		t.Fatal("unknown role must be rejected")
	}
}

func TestUserSetActiveRestores(t *testing.T) {
	svc, _, tx := newUserFixture(t)
	ctx := context.Background()

	seeded := testutil.SeedAccount(t, ctx, tx, "pause@example.com", "pause")

	if _, err := svc.SetActive(ctx, seeded.ID, false); err != nil {
		t.Fatalf("SetActive(false): %v", err)
	}
	restored, err := svc.SetActive(ctx, seeded.ID, true)
	if err != nil {
		t.Fatalf("SetActive(true): %v", err)
	}
	if !restored.IsActive {
		t.Fatal("account should be active again")
	}
	if _, err := svc.GetByEmail(ctx, "pause@example.com"); err != nil {
		t.Fatalf("GetByEmail after restore: %v", err)
	}
}

func TestUserStats(t *testing.T) {
	svc, accounts, tx := newUserFixture(t)
	ctx := context.Background()

	base, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	a := testutil.SeedAccount(t, ctx, tx, "stat1@example.com", "stat1")
	b := testutil.SeedAccount(t, ctx, tx, "stat2@example.com", "stat2")
	b.Role = types.RoleAdmin
	if err := accounts.Save(ctx, nil, b); err != nil {
		t.Fatalf("promote seed: %v", err)
	}
	a.IsActive = false
	if err := accounts.Save(ctx, nil, a); err != nil {
		t.Fatalf("deactivate seed: %v", err)
	}

	got, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if got.Total != base.Total+2 {
		t.Fatalf("total = %d, want %d", got.Total, base.Total+2)
	}
	if got.Active != base.Active+1 {
		t.Fatalf("active = %d, want %d", got.Active, base.Active+1)
	}
	if got.Inactive != base.Inactive+1 {
		t.Fatalf("inactive = %d, want %d", got.Inactive, base.Inactive+1)
	}
	if got.Admins != base.Admins+1 {
		t.Fatalf("admins = %d, want %d", got.Admins, base.Admins+1)
	}
	if got.Users != base.Users+1 {
		t.Fatalf("users = %d, want %d", got.Users, base.Users+1)
	}
}
