package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"overtime-tracker/internal/errors"
	"overtime-tracker/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Repository defines the interface for database operations
type Repository interface {
	// Users
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateUserRole(ctx context.Context, id string, role string) error
	CountUsersByRole(ctx context.Context, role string) (int, error)

	// Time entries
	CreateTimeEntry(ctx context.Context, entry *TimeEntry) error
	GetTimeEntry(ctx context.Context, id string) (*TimeEntry, error)
	SearchTimeEntries(ctx context.Context, opts SearchOptions) ([]*TimeEntry, error)
	UpdateTimeEntry(ctx context.Context, entry *TimeEntry) error
	UpdateTimeEntryStatus(ctx context.Context, id string, status string) error
	DeleteTimeEntry(ctx context.Context, id string) error

	// WithTransaction runs fn against a repository bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithTransaction(ctx context.Context, fn func(tx Repository) error) error

	Close() error
}

// Options tunes how the repository opens and uses the database
type Options struct {
	QueryTimeout   time.Duration
	WriteTimeout   time.Duration
	DirPermissions os.FileMode
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db   *sql.DB
	q    Querier
	opts Options
	inTx bool
	now  func() time.Time
}

// New creates a new SQLite repository instance with default options
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithConfig(dbPath, Options{})
}

// NewWithConfig opens dbPath, creating its directory when needed, enables
// foreign keys and applies pending migrations.
func NewWithConfig(dbPath string, opts Options) (*SQLiteRepository, error) {
	inMemory := dbPath == MemoryPath || strings.Contains(dbPath, "mode=memory")

	if !inMemory {
		perms := opts.DirPermissions
		if perms == 0 {
			perms = 0755
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), perms); err != nil {
			return nil, errors.NewDatabaseError("create database directory", err)
		}
	}

	db, err := sql.Open("sqlite", dataSourceName(dbPath))
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// every connection to :memory: is a separate database
	if inMemory {
		db.SetMaxOpenConns(1)
	}

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("enable foreign keys", err)
	}

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, q: db, opts: opts, now: time.Now}, nil
}

// dataSourceName enables foreign keys and a busy timeout on every pooled
// connection, not only the first one.
func dataSourceName(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	if r.inTx {
		return nil
	}
	return r.db.Close()
}

// WithTransaction implements Repository
func (r *SQLiteRepository) WithTransaction(ctx context.Context, fn func(tx Repository) error) error {
	if r.inTx {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}

	txRepo := &SQLiteRepository{db: r.db, q: tx, opts: r.opts, inTx: true, now: r.now}
	if err := fn(txRepo); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit transaction", err)
	}
	return nil
}

func (r *SQLiteRepository) readContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.QueryTimeout > 0 {
		return context.WithTimeout(ctx, r.opts.QueryTimeout)
	}
	return ctx, func() {}
}

func (r *SQLiteRepository) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.WriteTimeout > 0 {
		return context.WithTimeout(ctx, r.opts.WriteTimeout)
	}
	return ctx, func() {}
}

func (r *SQLiteRepository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Second)
}

// CreateUser inserts a user, assigning an ID and creation time when unset
func (r *SQLiteRepository) CreateUser(ctx context.Context, user *User) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.timestamp()
	}

	query := `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?)`
	return Execute(ctx, r.q, "create user", query,
		user.ID, user.Name, user.Email, user.Role, FormatTimeForDB(user.CreatedAt))
}

// GetUser retrieves a user by ID
func (r *SQLiteRepository) GetUser(ctx context.Context, id string) (*User, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return QuerySingle(ctx, r.q, query, ScanUser, "user", id, id)
}

// GetUserByEmail retrieves a user by e-mail address
func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return QuerySingle(ctx, r.q, query, ScanUser, "user", email, email)
}

// ListUsers retrieves all users ordered by name
func (r *SQLiteRepository) ListUsers(ctx context.Context) ([]*User, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users ORDER BY name ASC, email ASC`
	return QueryMultiple(ctx, r.q, query, ScanUsers, "users")
}

// UpdateUserRole changes the role of a user
func (r *SQLiteRepository) UpdateUserRole(ctx context.Context, id string, role string) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `UPDATE users SET role = ? WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.q, query, "user", id, role, id)
}

// CountUsersByRole counts users holding role
func (r *SQLiteRepository) CountUsersByRole(ctx context.Context, role string) (int, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	return QueryCount(ctx, r.q, `SELECT COUNT(*) FROM users WHERE role = ?`, "users", role)
}

// CreateTimeEntry inserts a time entry, assigning an ID and audit times when unset
func (r *SQLiteRepository) CreateTimeEntry(ctx context.Context, entry *TimeEntry) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	now := r.timestamp()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = entry.CreatedAt
	}

	query := `INSERT INTO time_entries (` + timeEntryColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return Execute(ctx, r.q, "create time entry", query,
		entry.ID,
		entry.UserID,
		FormatDateForDB(entry.Date),
		entry.Activity,
		entry.Type,
		entry.StartTime,
		entry.EndTime,
		entry.TotalHours,
		entry.Status,
		FormatTimeForDB(entry.CreatedAt),
		FormatTimeForDB(entry.UpdatedAt),
	)
}

// GetTimeEntry retrieves a time entry by ID
func (r *SQLiteRepository) GetTimeEntry(ctx context.Context, id string) (*TimeEntry, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE id = ?`
	return QuerySingle(ctx, r.q, query, ScanTimeEntry, "time entry", id, id)
}

// UpdateTimeEntry rewrites the recorded fields of an entry and bumps updated_at.
// Ownership, status and creation time are left untouched.
func (r *SQLiteRepository) UpdateTimeEntry(ctx context.Context, entry *TimeEntry) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	entry.UpdatedAt = r.timestamp()

	query := `
	UPDATE time_entries
	SET date = ?, activity = ?, type = ?, start_time = ?, end_time = ?, total_hours = ?, updated_at = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.q, query, "time entry", entry.ID,
		FormatDateForDB(entry.Date),
		entry.Activity,
		entry.Type,
		entry.StartTime,
		entry.EndTime,
		entry.TotalHours,
		FormatTimeForDB(entry.UpdatedAt),
		entry.ID,
	)
}

// UpdateTimeEntryStatus sets the approval status of an entry
func (r *SQLiteRepository) UpdateTimeEntryStatus(ctx context.Context, id string, status string) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `UPDATE time_entries SET status = ?, updated_at = ? WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.q, query, "time entry", id, status, FormatTimeForDB(r.timestamp()), id)
}

// DeleteTimeEntry deletes a time entry by ID
func (r *SQLiteRepository) DeleteTimeEntry(ctx context.Context, id string) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `DELETE FROM time_entries WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.q, query, "time entry", id, id)
}

// SearchTimeEntries returns entries matching opts, newest date first
func (r *SQLiteRepository) SearchTimeEntries(ctx context.Context, opts SearchOptions) ([]*TimeEntry, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	var conditions []string
	var args []interface{}

	if opts.UserID != nil {
		conditions = append(conditions, "user_id = ?")
		args = append(args, *opts.UserID)
	}
	if opts.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *opts.Status)
	}
	if opts.Type != nil {
		conditions = append(conditions, "type = ?")
		args = append(args, *opts.Type)
	}
	if opts.From != nil {
		conditions = append(conditions, "date >= ?")
		args = append(args, FormatDatePtrForDB(opts.From))
	}
	if opts.To != nil {
		conditions = append(conditions, "date <= ?")
		args = append(args, FormatDatePtrForDB(opts.To))
	}

	query := `SELECT ` + timeEntryColumns + ` FROM time_entries`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC, created_at DESC"

	return QueryMultiple(ctx, r.q, query, ScanTimeEntries, "time entries", args...)
}
