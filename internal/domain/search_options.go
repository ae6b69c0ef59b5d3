package domain

import "time"

// SearchOptions represents filter criteria for time entries.
// Nil fields are not filtered on; From and To bound the entry date inclusively.
type SearchOptions struct {
	UserID *string
	Status *EntryStatus
	Type   *EntryType
	From   *time.Time
	To     *time.Time
}
