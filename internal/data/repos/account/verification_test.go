package account

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/carprice-backend/internal/data/repos/testutil"
	types "github.com/yungbote/carprice-backend/internal/domain"
)

func TestVerificationRepoPendingLookup(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewVerificationRepo(db, testutil.Logger(t))

	v := testutil.SeedVerification(t, ctx, tx, "pending@example.com", "123456", time.Now().Add(5*time.Minute))

	got, err := repo.GetPendingByEmailAndCode(ctx, tx, v.Email, v.Code)
	if err != nil || got == nil || got.ID != v.ID {
		t.Fatalf("GetPendingByEmailAndCode: err=%v got=%+v", err, got)
	}
	got, err = repo.GetPendingByEmailAndCode(ctx, tx, v.Email, "000000")
	if err != nil || got != nil {
		t.Fatalf("wrong code should miss: err=%v got=%+v", err, got)
	}

	// Once verified the row drops out of the pending view.
	v.Verified = true
	if err := repo.Save(ctx, tx, v); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err = repo.GetPendingByEmailAndCode(ctx, tx, v.Email, v.Code)
	if err != nil || got != nil {
		t.Fatalf("verified row should miss pending lookup: err=%v got=%+v", err, got)
	}
}

func TestVerificationRepoLatestByEmail(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewVerificationRepo(db, testutil.Logger(t))

	email := "latest@example.com"
	older := &types.EmailVerification{
		ID:         uuid.New(),
		Email:      email,
		Code:       "111111",
		ExpiryTime: time.Now().Add(5 * time.Minute),
		CreatedAt:  time.Now().Add(-2 * time.Minute),
	}
	newer := &types.EmailVerification{
		ID:         uuid.New(),
		Email:      email,
		Code:       "222222",
		ExpiryTime: time.Now().Add(5 * time.Minute),
		CreatedAt:  time.Now(),
	}
	for _, v := range []*types.EmailVerification{older, newer} {
		if _, err := repo.Create(ctx, tx, v); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.GetLatestByEmail(ctx, tx, email)
	if err != nil || got == nil || got.Code != "222222" {
		t.Fatalf("GetLatestByEmail: err=%v got=%+v", err, got)
	}

	got, err = repo.GetLatestByEmail(ctx, tx, "never@example.com")
	if err != nil || got != nil {
		t.Fatalf("GetLatestByEmail(miss): err=%v got=%+v", err, got)
	}
}

func TestVerificationRepoDeleteByEmail(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewVerificationRepo(db, testutil.Logger(t))

	email := "purge@example.com"
	testutil.SeedVerification(t, ctx, tx, email, "333333", time.Now().Add(5*time.Minute))
	testutil.SeedVerification(t, ctx, tx, email, "444444", time.Now().Add(5*time.Minute))
	keep := testutil.SeedVerification(t, ctx, tx, "other@example.com", "555555", time.Now().Add(5*time.Minute))

	if err := repo.DeleteByEmail(ctx, tx, email); err != nil {
		t.Fatalf("DeleteByEmail: %v", err)
	}

	if got, err := repo.GetLatestByEmail(ctx, tx, email); err != nil || got != nil {
		t.Fatalf("rows should be gone: err=%v got=%+v", err, got)
	}
	if got, err := repo.GetLatestByEmail(ctx, tx, keep.Email); err != nil || got == nil {
		t.Fatalf("other email untouched: err=%v got=%+v", err, got)
	}
}
