package cli

import (
	"context"
	"strconv"

	"overtime-tracker/internal/domain"
)

// HoursCommand handles the hours command
type HoursCommand struct {
	app *App
}

// NewHoursCommand creates a new hours command handler
func NewHoursCommand(app *App) *HoursCommand {
	return &HoursCommand{app: app}
}

// Execute prints the time between two clock times
func (c *HoursCommand) Execute(ctx context.Context, args []string) error {
	hours, err := c.app.businessAPI.CalculateHours(args[0], args[1])
	if err != nil {
		return c.app.errorHandler.Handle("calculate hours", err)
	}

	c.app.formatter.Println("%s (%s h)", domain.FormatHours(hours), strconv.FormatFloat(hours, 'f', 2, 64))
	return nil
}
