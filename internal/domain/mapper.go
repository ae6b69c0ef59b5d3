package domain

import (
	"overtime-tracker/internal/repository/sqlite"
)

// UserMapper handles conversion between domain and database User models.
type UserMapper struct{}

// NewUserMapper creates a new UserMapper instance.
func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

// ToDatabase converts a domain User to a database User.
func (m *UserMapper) ToDatabase(user User) sqlite.User {
	return sqlite.User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

// FromDatabase converts a database User to a domain User.
func (m *UserMapper) FromDatabase(dbUser sqlite.User) User {
	return User{
		ID:        dbUser.ID,
		Name:      dbUser.Name,
		Email:     dbUser.Email,
		Role:      Role(dbUser.Role),
		CreatedAt: dbUser.CreatedAt,
	}
}

// FromDatabaseSlice converts a slice of database Users to domain Users.
func (m *UserMapper) FromDatabaseSlice(dbUsers []*sqlite.User) []User {
	users := make([]User, len(dbUsers))
	for i, u := range dbUsers {
		users[i] = m.FromDatabase(*u)
	}
	return users
}

// TimeEntryMapper handles conversion between domain and database TimeEntry models.
type TimeEntryMapper struct{}

// NewTimeEntryMapper creates a new TimeEntryMapper instance.
func NewTimeEntryMapper() *TimeEntryMapper {
	return &TimeEntryMapper{}
}

// ToDatabase converts a domain TimeEntry to a database TimeEntry.
func (m *TimeEntryMapper) ToDatabase(entry TimeEntry) sqlite.TimeEntry {
	return sqlite.TimeEntry{
		ID:         entry.ID,
		UserID:     entry.UserID,
		Date:       entry.Date,
		Activity:   entry.Activity,
		Type:       string(entry.Type),
		StartTime:  entry.StartTime,
		EndTime:    entry.EndTime,
		TotalHours: entry.TotalHours,
		Status:     string(entry.Status),
		CreatedAt:  entry.CreatedAt,
		UpdatedAt:  entry.UpdatedAt,
	}
}

// FromDatabase converts a database TimeEntry to a domain TimeEntry.
func (m *TimeEntryMapper) FromDatabase(dbEntry sqlite.TimeEntry) TimeEntry {
	return TimeEntry{
		ID:         dbEntry.ID,
		UserID:     dbEntry.UserID,
		Date:       dbEntry.Date,
		Activity:   dbEntry.Activity,
		Type:       EntryType(dbEntry.Type),
		StartTime:  dbEntry.StartTime,
		EndTime:    dbEntry.EndTime,
		TotalHours: dbEntry.TotalHours,
		Status:     EntryStatus(dbEntry.Status),
		CreatedAt:  dbEntry.CreatedAt,
		UpdatedAt:  dbEntry.UpdatedAt,
	}
}

// FromDatabaseSlice converts a slice of database TimeEntries to domain TimeEntries.
func (m *TimeEntryMapper) FromDatabaseSlice(dbEntries []*sqlite.TimeEntry) []TimeEntry {
	entries := make([]TimeEntry, len(dbEntries))
	for i, e := range dbEntries {
		entries[i] = m.FromDatabase(*e)
	}
	return entries
}

// SearchOptionsMapper handles conversion between domain and database SearchOptions.
type SearchOptionsMapper struct{}

// NewSearchOptionsMapper creates a new SearchOptionsMapper instance.
func NewSearchOptionsMapper() *SearchOptionsMapper {
	return &SearchOptionsMapper{}
}

// ToDatabase converts domain SearchOptions to database SearchOptions.
func (m *SearchOptionsMapper) ToDatabase(opts SearchOptions) sqlite.SearchOptions {
	dbOpts := sqlite.SearchOptions{
		UserID: opts.UserID,
		From:   opts.From,
		To:     opts.To,
	}
	if opts.Status != nil {
		status := string(*opts.Status)
		dbOpts.Status = &status
	}
	if opts.Type != nil {
		entryType := string(*opts.Type)
		dbOpts.Type = &entryType
	}
	return dbOpts
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	User          *UserMapper
	TimeEntry     *TimeEntryMapper
	SearchOptions *SearchOptionsMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		User:          NewUserMapper(),
		TimeEntry:     NewTimeEntryMapper(),
		SearchOptions: NewSearchOptionsMapper(),
	}
}
