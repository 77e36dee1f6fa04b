package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want error
	}{
		{"gorm not found", gorm.ErrRecordNotFound, ErrNotFound},
		{"sql no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), ErrNotFound},
		{"gorm duplicated", gorm.ErrDuplicatedKey, ErrConflict},
		{"pgx unique", &pgconn.PgError{Code: "23505"}, ErrConflict},
		{"pq unique", &pq.Error{Code: "23505"}, ErrConflict},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: votes.employee_id, votes.date (2067)"), ErrConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.err)
			assert.ErrorIs(t, got, tc.want)
			assert.ErrorIs(t, got, tc.err)
		})
	}

	other := &pgconn.PgError{Code: "23503"}
	assert.Same(t, error(other), Classify(other))
	assert.NoError(t, Classify(nil))
}

type mockedMenu struct {
	ID           uint
	RestaurantID uint
	Date         string
}

func (mockedMenu) TableName() string { return "menus" }

func TestClassifyPostgresUniqueViolationThroughGorm(t *testing.T) {
	t.Parallel()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "menus"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_menus_restaurant_date"})
	mock.ExpectRollback()

	err = Classify(db.Create(&mockedMenu{RestaurantID: 1, Date: "2026-10-18"}).Error)
	assert.ErrorIs(t, err, ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

type uniqueThing struct {
	ID   uint
	Name string `gorm:"uniqueIndex"`
}

func TestClassifySQLiteUniqueViolation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	db, err := OpenSQLite(ctx, t.TempDir()+"/classify.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	require.NoError(t, Migrate(db, &uniqueThing{}))

	require.NoError(t, db.Create(&uniqueThing{Name: "a"}).Error)
	err = Classify(db.Create(&uniqueThing{Name: "a"}).Error)
	assert.ErrorIs(t, err, ErrConflict)

	var missing uniqueThing
	assert.ErrorIs(t, Classify(db.First(&missing, 999).Error), ErrNotFound)
}

func TestDialectorFor(t *testing.T) {
	t.Parallel()

	for _, driver := range []string{"pgx", "pq", "sqlite"} {
		d, err := dialectorFor(driver, "x")
		require.NoError(t, err, driver)
		assert.NotNil(t, d)
	}
	_, err := dialectorFor("mysql", "x")
	assert.Error(t, err)
	assert.Equal(t, "x.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDSN("x.db"))
	assert.Equal(t, "file:x.db?mode=rwc&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDSN("file:x.db?mode=rwc"))
}
