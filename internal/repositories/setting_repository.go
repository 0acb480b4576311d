package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"storecrm_backend/internal/models"
)

// SettingRepository defines the interface for application setting operations.
type SettingRepository interface {
	UpsertSetting(executor SQLExecutor, setting *models.Setting) error
	GetSetting(key string) (*models.Setting, error)
	GetSettingValue(key string) (string, error)
	GetSettings() ([]models.Setting, error)
	DeleteSetting(executor SQLExecutor, key string) error
}

type settingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new instance of SettingRepository.
func NewSettingRepository(db *sql.DB) SettingRepository {
	return &settingRepository{db: db}
}

// UpsertSetting inserts a setting or replaces its value if the key exists.
func (r *settingRepository) UpsertSetting(executor SQLExecutor, setting *models.Setting) error {
	query := `INSERT INTO settings (setting_key, setting_value, updated_at)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (setting_key)
	          DO UPDATE SET setting_value = EXCLUDED.setting_value,
	                        updated_at = EXCLUDED.updated_at`

	setting.UpdatedAt = time.Now()
	if _, err := executor.Exec(query, setting.Key, setting.Value, setting.UpdatedAt); err != nil {
		return fmt.Errorf("%w: upserting setting '%s': %v", ErrDatabaseError, setting.Key, err)
	}
	return nil
}

// GetSetting retrieves a setting by key.
func (r *settingRepository) GetSetting(key string) (*models.Setting, error) {
	setting := &models.Setting{}
	query := `SELECT setting_key, setting_value, updated_at FROM settings WHERE setting_key = $1`
	err := r.db.QueryRow(query, key).Scan(&setting.Key, &setting.Value, &setting.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting setting '%s': %v", ErrDatabaseError, key, err)
	}
	return setting, nil
}

// GetSettingValue returns a setting's value, or an empty string when the key
// is absent or has no value.
func (r *settingRepository) GetSettingValue(key string) (string, error) {
	setting, err := r.GetSetting(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	if setting.Value == nil {
		return "", nil
	}
	return *setting.Value, nil
}

// GetSettings lists every setting ordered by key.
func (r *settingRepository) GetSettings() ([]models.Setting, error) {
	rows, err := r.db.Query(`SELECT setting_key, setting_value, updated_at FROM settings ORDER BY setting_key ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying settings: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	settings := []models.Setting{}
	for rows.Next() {
		var setting models.Setting
		if err := rows.Scan(&setting.Key, &setting.Value, &setting.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning setting: %v", ErrDatabaseError, err)
		}
		settings = append(settings, setting)
	}
	return settings, rows.Err()
}

// DeleteSetting removes a setting by key.
func (r *settingRepository) DeleteSetting(executor SQLExecutor, key string) error {
	result, err := executor.Exec(`DELETE FROM settings WHERE setting_key = $1`, key)
	if err != nil {
		return fmt.Errorf("%w: deleting setting '%s': %v", ErrDatabaseError, key, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting setting '%s': %v", ErrDatabaseError, key, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
