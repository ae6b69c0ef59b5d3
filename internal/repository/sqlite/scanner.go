package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

const userColumns = `id, name, email, role, created_at`

const timeEntryColumns = `id, user_id, date, activity, type, start_time, end_time, total_hours, status, created_at, updated_at`

// ScanUser scans a single user from a database row
func ScanUser(scanner Scanner) (*User, error) {
	user := &User{}
	var createdAt string

	err := scanner.Scan(&user.ID, &user.Name, &user.Email, &user.Role, &createdAt)
	if err != nil {
		return nil, err
	}

	if user.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}

	return user, nil
}

// ScanUsers scans multiple users from database rows
func ScanUsers(rows Rows) ([]*User, error) {
	return scanAll(rows, ScanUser)
}

// ScanTimeEntry scans a single time entry from a database row
func ScanTimeEntry(scanner Scanner) (*TimeEntry, error) {
	entry := &TimeEntry{}
	var date, createdAt, updatedAt string

	err := scanner.Scan(
		&entry.ID,
		&entry.UserID,
		&date,
		&entry.Activity,
		&entry.Type,
		&entry.StartTime,
		&entry.EndTime,
		&entry.TotalHours,
		&entry.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if entry.Date, err = ParseDateFromDB(date); err != nil {
		return nil, err
	}
	if entry.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	if entry.UpdatedAt, err = ParseTimeFromDB(updatedAt); err != nil {
		return nil, err
	}

	return entry, nil
}

// ScanTimeEntries scans multiple time entries from database rows
func ScanTimeEntries(rows Rows) ([]*TimeEntry, error) {
	return scanAll(rows, ScanTimeEntry)
}

func scanAll[T any](rows Rows, scan func(Scanner) (*T, error)) ([]*T, error) {
	var results []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
