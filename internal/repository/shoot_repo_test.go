package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return gormDB, mock
}

func TestLatestCodeForPrefix(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShootRepo(db)

	// Anchored so the whole statement is pinned: no deleted_at filter
	// (soft-deleted rows stay visible to the allocator) and length
	// before string order so "W-100" beats "W-99".
	mock.ExpectQuery(`^SELECT "shoot_code" FROM "shoots" WHERE shoot_code LIKE \$1 ORDER BY length\(shoot_code\) DESC, shoot_code DESC LIMIT \$2$`).
		WithArgs("W-%", 1).
		WillReturnRows(sqlmock.NewRows([]string{"shoot_code"}).AddRow("W-17"))

	code, err := repo.LatestCodeForPrefix("W")
	if err != nil {
		t.Fatalf("LatestCodeForPrefix: %v", err)
	}
	if code != "W-17" {
		t.Errorf("got %q, want W-17", code)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestLatestCodeForPrefixEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShootRepo(db)

	mock.ExpectQuery(`^SELECT "shoot_code" FROM "shoots" WHERE shoot_code LIKE \$1 ORDER BY length\(shoot_code\) DESC, shoot_code DESC LIMIT \$2$`).
		WithArgs("BS-%", 1).
		WillReturnRows(sqlmock.NewRows([]string{"shoot_code"}))

	code, err := repo.LatestCodeForPrefix("BS")
	if err != nil {
		t.Fatalf("LatestCodeForPrefix: %v", err)
	}
	if code != "" {
		t.Errorf("empty history should return empty string, got %q", code)
	}
}
