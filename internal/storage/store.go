package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Store handles SQLite persistence for allocations and time entries.
type Store struct {
	db *sql.DB
}

// AllocationRecord is a daily allocation row. ProjectAllocations is stored
// as a JSON document; each element carries project_id, project_name,
// percentage and hours.
type AllocationRecord struct {
	ID                 string
	UserID             string
	Date               string
	TotalWorkHours     float64
	ProjectAllocations json.RawMessage
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TimeEntryRecord is one time-entry row. Rows are append-only: the store
// exposes no update or delete for them.
type TimeEntryRecord struct {
	ID              string
	UserID          string
	Date            string
	TaskID          string
	ProjectID       string
	ProjectName     string
	TaskName        string
	DurationMinutes int
	Category        string
	Notes           string
	CreatedAt       time.Time
}

// NewStore opens (creating if needed) the SQLite database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	// Expand ~ in path
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// migrate creates the necessary tables
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS daily_allocations (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			date TEXT NOT NULL,
			total_work_hours REAL NOT NULL,
			project_allocations TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			UNIQUE(user_id, date)
		);

		CREATE TABLE IF NOT EXISTS time_entries (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			date TEXT NOT NULL,
			task_id TEXT NOT NULL,
			project_id TEXT,
			project_name TEXT,
			task_name TEXT NOT NULL,
			duration_minutes INTEGER NOT NULL,
			category TEXT,
			notes TEXT,
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_allocations_user_date ON daily_allocations(user_id, date);
		CREATE INDEX IF NOT EXISTS idx_entries_user_date ON time_entries(user_id, date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GenerateID returns a new row ID.
func GenerateID() string {
	return uuid.NewString()
}

// UpsertAllocation inserts or replaces the allocation for (user, date).
// At most one row per user per day survives; last write wins.
func (s *Store) UpsertAllocation(rec *AllocationRecord) (*AllocationRecord, error) {
	now := time.Now()

	existing, err := s.GetAllocation(rec.UserID, rec.Date)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		_, err = s.db.Exec(`
			UPDATE daily_allocations
			SET total_work_hours = ?, project_allocations = ?, updated_at = ?
			WHERE user_id = ? AND date = ?
		`, rec.TotalWorkHours, string(rec.ProjectAllocations), now, rec.UserID, rec.Date)
		if err != nil {
			return nil, err
		}
		return s.GetAllocation(rec.UserID, rec.Date)
	}

	id := rec.ID
	if id == "" {
		id = GenerateID()
	}
	_, err = s.db.Exec(`
		INSERT INTO daily_allocations (id, user_id, date, total_work_hours, project_allocations, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, rec.UserID, rec.Date, rec.TotalWorkHours, string(rec.ProjectAllocations), now, now)
	if err != nil {
		return nil, err
	}
	return s.GetAllocation(rec.UserID, rec.Date)
}

// GetAllocation retrieves the allocation for (user, date). A miss returns
// (nil, nil).
func (s *Store) GetAllocation(userID, date string) (*AllocationRecord, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, date, total_work_hours, project_allocations, created_at, updated_at
		FROM daily_allocations WHERE user_id = ? AND date = ?
	`, userID, date)

	var rec AllocationRecord
	var allocationsJSON string

	err := row.Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.TotalWorkHours, &allocationsJSON, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rec.ProjectAllocations = json.RawMessage(allocationsJSON)
	return &rec, nil
}

// InsertTimeEntry appends a time entry.
func (s *Store) InsertTimeEntry(rec *TimeEntryRecord) error {
	if rec.ID == "" {
		rec.ID = GenerateID()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO time_entries (id, user_id, date, task_id, project_id, project_name, task_name, duration_minutes, category, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.UserID, rec.Date, rec.TaskID, rec.ProjectID, rec.ProjectName, rec.TaskName, rec.DurationMinutes, rec.Category, rec.Notes, rec.CreatedAt)

	return err
}

// ListTimeEntries retrieves a user's time entries, newest first, optionally
// limited to one date.
func (s *Store) ListTimeEntries(userID, date string) ([]TimeEntryRecord, error) {
	query := `
		SELECT id, user_id, date, task_id, project_id, project_name, task_name, duration_minutes, category, notes, created_at
		FROM time_entries WHERE user_id = ?
	`
	args := []any{userID}
	if date != "" {
		query += " AND date = ?"
		args = append(args, date)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []TimeEntryRecord
	for rows.Next() {
		var rec TimeEntryRecord
		var projectID, projectName, category, notes sql.NullString

		err := rows.Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.TaskID, &projectID, &projectName, &rec.TaskName, &rec.DurationMinutes, &category, &notes, &rec.CreatedAt)
		if err != nil {
			return nil, err
		}

		rec.ProjectID = projectID.String
		rec.ProjectName = projectName.String
		rec.Category = category.String
		rec.Notes = notes.String
		entries = append(entries, rec)
	}

	return entries, rows.Err()
}

// CountTimeEntries returns the total number of time entries for a user.
func (s *Store) CountTimeEntries(userID string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM time_entries WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count time entries: %w", err)
	}
	return count, nil
}

// CountAllocations returns the total number of allocation rows for a user.
func (s *Store) CountAllocations(userID string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM daily_allocations WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count allocations: %w", err)
	}
	return count, nil
}
