package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"aircraft_manager/internal/apperrors"
	"aircraft_manager/internal/models"
)

// AircraftRepository manages the aircrafts and aircrafts_data tables.
// Every mutating call runs in its own transaction; reads do not.
type AircraftRepository struct {
	db *gorm.DB
}

func NewAircraftRepository(db *gorm.DB) *AircraftRepository {
	return &AircraftRepository{db: db}
}

// Exists reports whether an aircraft with the given id is stored.
func (r *AircraftRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Aircraft{}).Where("aircraft_id = ?", id).Count(&count).Error
	if err != nil {
		return false, classify(err, "checking aircraft")
	}
	return count > 0, nil
}

// Get loads one aircraft with its performance data.
func (r *AircraftRepository) Get(ctx context.Context, id uint) (models.Aircraft, error) {
	aircraft, err := find(r.db.WithContext(ctx), id)
	if err != nil {
		return models.Aircraft{}, classify(err, "loading aircraft")
	}
	return aircraft, nil
}

// Create inserts the aircraft and its performance row in one transaction and
// returns the stored aggregate with both ids assigned.
func (r *AircraftRepository) Create(ctx context.Context, aircraft models.Aircraft) (models.Aircraft, error) {
	if err := validate(aircraft); err != nil {
		return models.Aircraft{}, err
	}

	aircraft.ID = 0
	perf := aircraft.Performance
	perf.ID = 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&aircraft).Error; err != nil {
			return err
		}
		perf.AircraftID = aircraft.ID
		return tx.Create(&perf).Error
	})
	if err != nil {
		err = classify(err, "adding aircraft")
		logrus.WithError(err).WithField("name", aircraft.Name).Error("Failed to add aircraft")
		return models.Aircraft{}, err
	}

	aircraft.Performance = perf
	logrus.WithField("aircraft_id", aircraft.ID).Info("Aircraft added successfully")
	return aircraft, nil
}

// List returns every aircraft with its performance data, oldest first.
// It never returns a nil slice.
func (r *AircraftRepository) List(ctx context.Context) ([]models.Aircraft, error) {
	aircraft := []models.Aircraft{}
	err := r.db.WithContext(ctx).Preload("Performance").Order("aircraft_id").Find(&aircraft).Error
	if err != nil {
		return nil, classify(err, "listing aircraft")
	}
	return aircraft, nil
}

// Update applies a sparse patch and returns the aggregate as stored after the write.
// It fails with NotFound when the aircraft is absent and InvalidData when the patch is empty.
func (r *AircraftRepository) Update(ctx context.Context, id uint, patch models.AircraftPatch) (models.Aircraft, error) {
	var updated models.Aircraft

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := find(tx, id)
		if err != nil {
			return err
		}

		merge, err := MergePatch(current, patch)
		if err != nil {
			return err
		}

		if len(merge.AircraftFields) > 0 {
			res := tx.Model(&models.Aircraft{}).Where("aircraft_id = ?", id).Updates(merge.AircraftFields)
			if err := affected(res, id); err != nil {
				return err
			}
		}
		if len(merge.PerformanceFields) > 0 {
			res := tx.Model(&models.AircraftPerformance{}).Where("aircraft_id = ?", id).Updates(merge.PerformanceFields)
			if err := affected(res, id); err != nil {
				return err
			}
		}

		updated, err = find(tx, id)
		return err
	})
	if err != nil {
		err = classify(err, "updating aircraft")
		logrus.WithError(err).WithField("aircraft_id", id).Error("Failed to update aircraft")
		return models.Aircraft{}, err
	}

	logrus.WithField("aircraft_id", id).Info("Aircraft updated successfully")
	return updated, nil
}

// Delete removes the aircraft and, through the cascade, its performance row.
// The existence check is the row count of the delete itself.
func (r *AircraftRepository) Delete(ctx context.Context, id uint) (string, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("aircraft_id = ?", id).Delete(&models.Aircraft{})
		if err := affected(res, id); err != nil {
			return err
		}
		// no-op where the foreign key already cascaded
		return tx.Where("aircraft_id = ?", id).Delete(&models.AircraftPerformance{}).Error
	})
	if err != nil {
		err = classify(err, "deleting aircraft")
		logrus.WithError(err).WithField("aircraft_id", id).Error("Failed to delete aircraft")
		return "", err
	}

	msg := fmt.Sprintf("Aircraft with id %d deleted successfully.", id)
	logrus.WithField("aircraft_id", id).Info(msg)
	return msg, nil
}

func find(db *gorm.DB, id uint) (models.Aircraft, error) {
	var aircraft models.Aircraft
	err := db.Preload("Performance").Where("aircraft_id = ?", id).First(&aircraft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Aircraft{}, notFound(id)
	}
	return aircraft, err
}

func affected(res *gorm.DB, id uint) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(id)
	}
	return nil
}

func notFound(id uint) error {
	return apperrors.Newf(apperrors.NotFound, "Aircraft with id %d not found.", id)
}

func validate(aircraft models.Aircraft) error {
	var missing []string
	if strings.TrimSpace(aircraft.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(aircraft.Manufacturer) == "" {
		missing = append(missing, "manufacturer")
	}
	if len(missing) > 0 {
		return apperrors.Newf(apperrors.InvalidData, "missing required fields: %s", strings.Join(missing, ", "))
	}
	if !aircraft.AircraftType.Valid() {
		return apperrors.Newf(apperrors.InvalidData, "unknown aircraft_type %d", int(aircraft.AircraftType))
	}
	return nil
}

// classify turns a storage error into a domain error. Errors that already carry
// a kind pass through unchanged.
func classify(err error, action string) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.Wrap(apperrors.NotFound, err, "")
	}
	if isIntegrityViolation(err) {
		return apperrors.Wrap(apperrors.DatabaseIntegrity, err, fmt.Sprintf("Integrity error %s.", action))
	}
	return apperrors.Wrap(apperrors.RepositoryUnavailable, err, "")
}

// isIntegrityViolation recognises constraint failures from every supported driver.
func isIntegrityViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "23"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated)
}
