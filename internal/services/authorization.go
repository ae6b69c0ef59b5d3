package services

import (
	"overtime-tracker/internal/domain"
	"overtime-tracker/internal/errors"
)

func requireActor(actor *domain.User) error {
	if actor == nil || actor.ID == "" {
		return errors.ErrActorRequired
	}
	return nil
}

func requireAdmin(actor *domain.User, operation string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return errors.NewAdminRequiredError(operation).WithContext("actor", actor.Email)
	}
	return nil
}

// ensureOwner reports a foreign entry exactly like a missing one.
func ensureOwner(actor *domain.User, entry *domain.TimeEntry, id string) error {
	if entry == nil || !entry.BelongsTo(actor.ID) {
		return errors.NewEntryNotOwnedError(id)
	}
	return nil
}
