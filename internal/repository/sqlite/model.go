package sqlite

import "time"

// User is a row of the users table.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
}

// TimeEntry is a row of the time_entries table.
// Date holds only the calendar day; StartTime and EndTime are "HH:MM" strings.
type TimeEntry struct {
	ID         string
	UserID     string
	Date       time.Time
	Activity   string
	Type       string
	StartTime  string
	EndTime    string
	TotalHours float64
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SearchOptions contains all possible search parameters
type SearchOptions struct {
	UserID *string
	Status *string
	Type   *string
	From   *time.Time
	To     *time.Time
}
