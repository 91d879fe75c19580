package preferences

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ngmaloney/weathernow/internal/database"
	"github.com/ngmaloney/weathernow/internal/models"
)

const (
	keyUnit  = "unit"
	keyTheme = "theme"
)

// Repository persists preferences in the local SQLite database
type Repository struct {
	dbPath string
}

// NewRepository creates a repository for the database at dbPath
func NewRepository(dbPath string) *Repository {
	if dbPath == "" {
		dbPath = database.DBPath()
	}
	return &Repository{dbPath: dbPath}
}

// Load returns stored preferences, filling missing or unknown values with defaults
func (r *Repository) Load() (Preferences, error) {
	prefs := Defaults()

	if err := database.EnsureUserSchema(r.dbPath); err != nil {
		return prefs, err
	}

	db, err := database.Open(r.dbPath)
	if err != nil {
		return prefs, err
	}
	defer db.Close()

	unit, err := get(db, keyUnit)
	if err != nil {
		return prefs, err
	}
	if unit != "" {
		prefs.Unit = models.ParseTemperatureUnit(unit)
	}

	theme, err := get(db, keyTheme)
	if err != nil {
		return prefs, err
	}
	if theme != "" {
		prefs.Theme = ParseTheme(theme)
	}

	return prefs, nil
}

// Save stores both preferences
func (r *Repository) Save(p Preferences) error {
	if err := database.EnsureUserSchema(r.dbPath); err != nil {
		return err
	}

	db, err := database.Open(r.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`
	now := time.Now()
	for key, value := range map[string]string{keyUnit: string(p.Unit), keyTheme: string(p.Theme)} {
		if _, err := tx.Exec(query, key, value, now); err != nil {
			return fmt.Errorf("saving %s preference: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing preferences: %w", err)
	}
	return nil
}

func get(db *sql.DB, key string) (string, error) {
	var value string
	err := db.QueryRow("SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s preference: %w", key, err)
	}
	return value, nil
}
