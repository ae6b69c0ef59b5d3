package cli

import (
	"context"
	"strings"

	"overtime-tracker/internal/domain"
	"overtime-tracker/internal/validation"
)

// EntryOptions holds the flag values describing an entry
type EntryOptions struct {
	Date      string
	Activity  string
	Type      string
	StartTime string
	EndTime   string
}

// draft turns the options into a draft, falling back to base for empty values
func (o EntryOptions) draft(base domain.TimeEntryDraft) (domain.TimeEntryDraft, error) {
	d := base
	if strings.TrimSpace(o.Date) != "" {
		date, err := validation.ParseDate(o.Date)
		if err != nil {
			return domain.TimeEntryDraft{}, err
		}
		d.Date = date
	}
	if o.Activity != "" {
		d.Activity = o.Activity
	}
	if o.Type != "" {
		d.Type = domain.EntryType(o.Type)
	}
	if o.StartTime != "" {
		d.StartTime = o.StartTime
	}
	if o.EndTime != "" {
		d.EndTime = o.EndTime
	}
	return d, nil
}

// AddEntryCommand handles entry add
type AddEntryCommand struct {
	app  *App
	opts EntryOptions
}

// NewAddEntryCommand creates a new entry add handler
func NewAddEntryCommand(app *App) *AddEntryCommand {
	return &AddEntryCommand{app: app}
}

// Execute records a new entry for the acting user. The date defaults to today
// and the type to extra.
func (c *AddEntryCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 && c.opts.Activity == "" {
		c.opts.Activity = strings.Join(args, " ")
	}

	d, err := c.opts.draft(domain.TimeEntryDraft{Date: today(), Type: domain.EntryTypeExtra})
	if err != nil {
		return c.app.errorHandler.Handle("add entry", err)
	}

	entry, err := c.app.businessAPI.AddEntry(ctx, c.app.Actor(), d)
	if err != nil {
		return c.app.errorHandler.Handle("add entry", err)
	}

	c.app.formatter.Success("Recorded %s of %s hours", domain.FormatHours(entry.TotalHours), strings.ToLower(entry.Type.Label()))
	c.app.formatter.Entry(*entry)
	return nil
}

// EditEntryCommand handles entry edit
type EditEntryCommand struct {
	app  *App
	opts EntryOptions
}

// NewEditEntryCommand creates a new entry edit handler
func NewEditEntryCommand(app *App) *EditEntryCommand {
	return &EditEntryCommand{app: app}
}

// Execute replaces the given fields of an entry; flags left empty keep their value
func (c *EditEntryCommand) Execute(ctx context.Context, args []string) error {
	id := args[0]

	existing, err := c.app.businessAPI.GetEntry(ctx, c.app.Actor(), id)
	if err != nil {
		return c.app.errorHandler.Handle("edit entry", err)
	}

	d, err := c.opts.draft(existing.Record().TimeEntryDraft)
	if err != nil {
		return c.app.errorHandler.Handle("edit entry", err)
	}

	entry, err := c.app.businessAPI.EditEntry(ctx, c.app.Actor(), id, d)
	if err != nil {
		return c.app.errorHandler.Handle("edit entry", err)
	}

	c.app.formatter.Success("Updated entry %s", entry.ID)
	c.app.formatter.Entry(*entry)
	return nil
}

// DeleteEntryCommand handles entry delete
type DeleteEntryCommand struct {
	app *App
}

// NewDeleteEntryCommand creates a new entry delete handler
func NewDeleteEntryCommand(app *App) *DeleteEntryCommand {
	return &DeleteEntryCommand{app: app}
}

// Execute deletes one of the acting user's entries
func (c *DeleteEntryCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.businessAPI.DeleteEntry(ctx, c.app.Actor(), args[0]); err != nil {
		return c.app.errorHandler.Handle("delete entry", err)
	}
	c.app.formatter.Success("Deleted entry %s", args[0])
	return nil
}

// ListEntriesOptions holds the entry list filters
type ListEntriesOptions struct {
	Status string
	Type   string
	From   string
	To     string
}

// ListEntriesCommand handles entry list
type ListEntriesCommand struct {
	app  *App
	opts ListEntriesOptions
}

// NewListEntriesCommand creates a new entry list handler
func NewListEntriesCommand(app *App) *ListEntriesCommand {
	return &ListEntriesCommand{app: app}
}

// Execute lists the acting user's entries, newest first
func (c *ListEntriesCommand) Execute(ctx context.Context, args []string) error {
	filter, err := parseEntryFilter(c.opts.Status, c.opts.Type, c.opts.From, c.opts.To)
	if err != nil {
		return c.app.errorHandler.Handle("list entries", err)
	}

	entries, err := c.app.businessAPI.ListEntries(ctx, c.app.Actor(), filter)
	if err != nil {
		return c.app.errorHandler.Handle("list entries", err)
	}

	c.app.formatter.EntryTable(entries)
	return nil
}
