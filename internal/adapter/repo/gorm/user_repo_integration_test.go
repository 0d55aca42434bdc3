package gormrepo

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"xianverse/internal/app/ports"
	"xianverse/internal/domain/cultivation"
)

// openTestDB connects to the database named by XIANVERSE_TEST_DB_DSN and
// applies the migrations. Without the variable the test is skipped, so the
// unit suite stays runnable without postgres.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := strings.TrimSpace(os.Getenv("XIANVERSE_TEST_DB_DSN"))
	if dsn == "" {
		t.Skip("XIANVERSE_TEST_DB_DSN not set")
	}
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := ApplyMigrations(context.Background(), db, "../../../../migrations"); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func TestSaveWithVersion_DuplicateCreateIsConflict(t *testing.T) {
	repo := NewUserRepo(openTestDB(t))
	ctx := context.Background()

	rec := cultivation.NewUserRecord("it-"+uuid.NewString(), cultivation.DefaultConfig())
	rec.Version = 1
	rec.UpdatedAt = time.Now().UTC()

	if err := repo.SaveWithVersion(ctx, rec, 0); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := repo.SaveWithVersion(ctx, rec, 0); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("second create err = %v, want ErrConflict", err)
	}
}

func TestSaveWithVersion_StaleUpdateIsConflict(t *testing.T) {
	repo := NewUserRepo(openTestDB(t))
	ctx := context.Background()

	rec := cultivation.NewUserRecord("it-"+uuid.NewString(), cultivation.DefaultConfig())
	rec.Version = 1
	rec.UpdatedAt = time.Now().UTC()
	if err := repo.SaveWithVersion(ctx, rec, 0); err != nil {
		t.Fatalf("create: %v", err)
	}

	rec.SpiritStones += 50
	rec.Version = 2
	if err := repo.SaveWithVersion(ctx, rec, 1); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := repo.SaveWithVersion(ctx, rec, 1); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("stale update err = %v, want ErrConflict", err)
	}

	got, err := repo.GetByUserID(ctx, rec.UserID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Version != 2 || got.SpiritStones != rec.SpiritStones {
		t.Fatalf("stored version = %d stones = %d, want 2 and %d", got.Version, got.SpiritStones, rec.SpiritStones)
	}
}
