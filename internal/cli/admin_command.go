package cli

import (
	"context"

	"overtime-tracker/internal/domain"
	"overtime-tracker/internal/services"
)

// ReviewEntryCommand handles admin approve and admin reject
type ReviewEntryCommand struct {
	app    *App
	status domain.EntryStatus
}

// NewApproveEntryCommand creates a handler that approves an entry
func NewApproveEntryCommand(app *App) *ReviewEntryCommand {
	return &ReviewEntryCommand{app: app, status: domain.StatusApproved}
}

// NewRejectEntryCommand creates a handler that rejects an entry
func NewRejectEntryCommand(app *App) *ReviewEntryCommand {
	return &ReviewEntryCommand{app: app, status: domain.StatusRejected}
}

// Execute sets the status of the entry named by args[0]
func (c *ReviewEntryCommand) Execute(ctx context.Context, args []string) error {
	var (
		entry *services.ReviewedEntry
		err   error
	)
	if c.status == domain.StatusApproved {
		entry, err = c.app.businessAPI.ApproveEntry(ctx, c.app.Actor(), args[0])
	} else {
		entry, err = c.app.businessAPI.RejectEntry(ctx, c.app.Actor(), args[0])
	}
	if err != nil {
		return c.app.errorHandler.Handle("review entry", err)
	}

	c.app.formatter.Success("Entry %s of %s <%s> is now %s", entry.ID, entry.Owner.Name, entry.Owner.Email, entry.Status)
	return nil
}

// PromoteUserCommand handles admin promote
type PromoteUserCommand struct {
	app *App
}

// NewPromoteUserCommand creates a new admin promote handler
func NewPromoteUserCommand(app *App) *PromoteUserCommand {
	return &PromoteUserCommand{app: app}
}

// Execute grants the administrator role to the user with e-mail args[0]
func (c *PromoteUserCommand) Execute(ctx context.Context, args []string) error {
	user, err := c.app.businessAPI.PromoteUser(ctx, c.app.Actor(), args[0])
	if err != nil {
		return c.app.errorHandler.Handle("promote user", err)
	}
	c.app.formatter.Success("%s <%s> is now an administrator", user.Name, user.Email)
	return nil
}

// OverviewCommand handles admin overview
type OverviewCommand struct {
	app *App
}

// NewOverviewCommand creates a new admin overview handler
func NewOverviewCommand(app *App) *OverviewCommand {
	return &OverviewCommand{app: app}
}

// Execute prints every user with their balance
func (c *OverviewCommand) Execute(ctx context.Context, args []string) error {
	overviews, err := c.app.businessAPI.ListUserOverviews(ctx, c.app.Actor())
	if err != nil {
		return c.app.errorHandler.Handle("build overview", err)
	}
	c.app.formatter.Overviews(overviews)
	return nil
}
