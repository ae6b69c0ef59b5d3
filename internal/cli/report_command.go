package cli

import (
	"context"
	"strings"

	"overtime-tracker/internal/errors"
)

// ReportOptions holds the report flags
type ReportOptions struct {
	Format string
	User   string
}

// ReportCommand handles the report command
type ReportCommand struct {
	app  *App
	opts ReportOptions
}

// NewReportCommand creates a new report command handler
func NewReportCommand(app *App) *ReportCommand {
	return &ReportCommand{app: app}
}

// Execute builds a report and prints it as a table or CSV
func (c *ReportCommand) Execute(ctx context.Context, args []string) error {
	format := strings.ToLower(strings.TrimSpace(c.opts.Format))
	if format == "" {
		format = c.app.config.Report.DefaultFormat
	}
	if format != "table" && format != "csv" {
		return c.app.errorHandler.Handle("build report",
			errors.NewInvalidInputError("format", format, "must be table or csv"))
	}

	report, err := c.app.businessAPI.BuildReport(ctx, c.app.Actor(), c.opts.User)
	if err != nil {
		return c.app.errorHandler.Handle("build report", err)
	}

	if format == "csv" {
		if err := c.app.businessAPI.WriteReportCSV(report, c.app.out); err != nil {
			return c.app.errorHandler.Handle("export report", err)
		}
		return nil
	}

	c.app.formatter.Report(report)
	return nil
}
