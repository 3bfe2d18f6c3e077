package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"aircraft_manager/internal/apperrors"
	"aircraft_manager/internal/models"
	"aircraft_manager/internal/testutils"
)

// UNIT TESTS WITH SQLMOCK (postgres dialect, driver failures)

func newMockRepository(t *testing.T) (*AircraftRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock DB: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open gorm over mock DB: %v", err)
	}
	return NewAircraftRepository(db), mock
}

func TestCreate_IntegrityViolationRollsBack(t *testing.T) {
	tests := []struct {
		name   string
		dbErr  error
		failOn string
	}{
		{
			name:   "pgx unique violation on aircraft",
			dbErr:  &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"},
			failOn: "aircraft",
		},
		{
			name:   "lib/pq not null violation on aircraft",
			dbErr:  &pq.Error{Code: "23502", Message: "null value in column \"name\""},
			failOn: "aircraft",
		},
		{
			name:   "pgx unique violation on performance row",
			dbErr:  &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint \"idx_aircrafts_data_aircraft_id\""},
			failOn: "performance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)

			mock.ExpectBegin()
			if tt.failOn == "aircraft" {
				mock.ExpectQuery(`INSERT INTO "aircrafts"`).WillReturnError(tt.dbErr)
			} else {
				mock.ExpectQuery(`INSERT INTO "aircrafts"`).
					WillReturnRows(sqlmock.NewRows([]string{"aircraft_id"}).AddRow(1))
				mock.ExpectQuery(`INSERT INTO "aircrafts_data"`).WillReturnError(tt.dbErr)
			}
			mock.ExpectRollback()

			_, err := repo.Create(context.Background(), testutils.MockAircraft())
			if !apperrors.Is(err, apperrors.DatabaseIntegrity) {
				t.Errorf("Create() error = %v, want DatabaseIntegrity", err)
			}
			if !errors.Is(err, tt.dbErr) {
				t.Error("driver error should stay reachable in the chain")
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("Unmet expectations: %v", err)
			}
		})
	}
}

func TestCreate_CommitsBothRows(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "aircrafts"`).
		WillReturnRows(sqlmock.NewRows([]string{"aircraft_id"}).AddRow(7))
	mock.ExpectQuery(`INSERT INTO "aircrafts_data"`).
		WillReturnRows(sqlmock.NewRows([]string{"aircraft_data_id"}).AddRow(3))
	mock.ExpectCommit()

	created, err := repo.Create(context.Background(), testutils.MockAircraft())
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if created.ID != 7 || created.Performance.ID != 3 || created.Performance.AircraftID != 7 {
		t.Errorf("Create() = %+v / %+v", created, created.Performance)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestList_StorageFailureIsUnavailable(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT \* FROM "aircrafts"`).WillReturnError(errors.New("connection reset by peer"))

	_, err := repo.List(context.Background())
	if !apperrors.Is(err, apperrors.RepositoryUnavailable) {
		t.Errorf("List() error = %v, want RepositoryUnavailable", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestDelete_ForeignKeyViolation(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "aircrafts"`).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "update or delete violates foreign key constraint"})
	mock.ExpectRollback()

	_, err := repo.Delete(context.Background(), 1)
	if !apperrors.Is(err, apperrors.DatabaseIntegrity) {
		t.Errorf("Delete() error = %v, want DatabaseIntegrity", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestDelete_ZeroRowsIsNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "aircrafts"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.Delete(context.Background(), 11)
	if !apperrors.Is(err, apperrors.NotFound) {
		t.Errorf("Delete() error = %v, want NotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestUpdate_MissingAircraftRollsBack(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "aircrafts" WHERE aircraft_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"aircraft_id", "name", "manufacturer", "aircraft_type", "first_flight"}))
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), 3, models.AircraftPatch{Name: testutils.String("X")})
	if !apperrors.Is(err, apperrors.NotFound) {
		t.Errorf("Update() error = %v, want NotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestIsIntegrityViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"pgx unique", &pgconn.PgError{Code: "23505"}, true},
		{"pgx serialization failure", &pgconn.PgError{Code: "40001"}, false},
		{"pq foreign key", &pq.Error{Code: "23503"}, true},
		{"pq undefined table", &pq.Error{Code: "42P01"}, false},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, true},
		{"plain error", errors.New("timeout"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isIntegrityViolation(tt.err); got != tt.want {
				t.Errorf("isIntegrityViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}
