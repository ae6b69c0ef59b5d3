package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"overtime-tracker/internal/api"
	"overtime-tracker/internal/config"
	"overtime-tracker/internal/logging"
)

// Command is implemented by every command handler
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// APIFactory opens the business API once configuration is final.
// The returned closer releases whatever the API holds, such as the database.
type APIFactory func(cfg *config.Config, logger *slog.Logger) (api.BusinessAPI, io.Closer, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	loader  *config.Loader
	factory APIFactory
	out     io.Writer
	errOut  io.Writer

	config *config.Config
	logger *slog.Logger
	app    *App
	closer io.Closer
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(loader *config.Loader, factory APIFactory, out, errOut io.Writer) *RootCommand {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	root := &RootCommand{
		loader:  loader,
		factory: factory,
		out:     out,
		errOut:  errOut,
	}

	root.cmd = &cobra.Command{
		Use:   "ot",
		Short: "Track overtime and the time taken off against it",
		Long: `Overtime Tracker (ot) records extra hours worked and compensation time taken,
keeps a running balance per user and lets administrators approve entries.

EXAMPLES:
  ot user bootstrap-admin "Ana Admin" ana@example.com
  ot user register "Jane Doe" jane@example.com
  ot --as jane@example.com entry add --start 18:00 --end 20:30 "Release preparation"
  ot --as jane@example.com entry add --type compensation --date 2024-03-08 --start 09:00 --end 12:00 "Dentist"
  ot --as jane@example.com balance
  ot --as ana@example.com admin approve <entry id>
  ot --as ana@example.com report --user jane@example.com --format csv > jane.csv
  ot hours 22:00 06:00

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

    OT_USER                                Acting user e-mail (or --as)
    OT_DB_DIR                              Database directory (default: ~/.ot)
    OT_DB_FILENAME                         Database filename (default: ot.db)
    OT_DB_QUERY_TIMEOUT                    Query timeout (default: 10s)
    OT_DB_WRITE_TIMEOUT                    Write timeout (default: 5s)
    OT_VALIDATION_ACTIVITY_MIN/MAX         Activity length (default: 3-200)
    OT_VALIDATION_NAME_MIN/MAX             User name length (default: 2-100)
    OT_VALIDATION_ALLOW_OVERNIGHT          Accept entries ending after midnight (default: false)
    OT_DISPLAY_DATE_FORMAT                 Date layout in tables (default: 02/01/2006)
    OT_NO_COLOR                            Disable colored output (default: false)
    OT_APP_TIMEOUT                         Per-command timeout (default: 30s)
    OT_DEBUG                               Debug logging to stderr (default: false)
    OT_REPORT_DEFAULT_FORMAT               table or csv (default: table)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd.Flags())
		},
	}
	root.cmd.SetOut(out)
	root.cmd.SetErr(errOut)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// SetArgs overrides the command line arguments, for tests
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Execute runs the root command and releases the API afterwards
func (r *RootCommand) Execute() error {
	err := r.cmd.Execute()
	if r.closer != nil {
		if closeErr := r.closer.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close database: %w", closeErr)
		}
		r.closer = nil
	}
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("as", "", "E-mail of the acting user (overrides OT_USER)")

	flags.String("db-dir", "", "Database directory (overrides OT_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides OT_DB_FILENAME)")

	flags.Bool("allow-overnight", false, "Accept entries that end after midnight (overrides OT_VALIDATION_ALLOW_OVERNIGHT)")

	flags.Duration("app-timeout", 0, "Per-command timeout (overrides OT_APP_TIMEOUT)")
	flags.Bool("debug", false, "Write debug logs to stderr (overrides OT_DEBUG)")
	flags.Bool("no-color", false, "Disable colored output (overrides OT_NO_COLOR)")
}

// overridesFromFlags collects the global flags the user actually set
func overridesFromFlags(flags *pflag.FlagSet) *config.ConfigOverrides {
	overrides := &config.ConfigOverrides{}

	if flags.Changed("as") {
		user, _ := flags.GetString("as")
		overrides.User = &user
	}
	if flags.Changed("db-dir") {
		dir, _ := flags.GetString("db-dir")
		overrides.DBDir = &dir
	}
	if flags.Changed("db-filename") {
		filename, _ := flags.GetString("db-filename")
		overrides.DBFilename = &filename
	}
	if flags.Changed("allow-overnight") {
		allow, _ := flags.GetBool("allow-overnight")
		overrides.AllowOvernight = &allow
	}
	if flags.Changed("app-timeout") {
		timeout, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &timeout
	}
	if flags.Changed("debug") {
		debug, _ := flags.GetBool("debug")
		overrides.Debug = &debug
	}
	if flags.Changed("no-color") {
		noColor, _ := flags.GetBool("no-color")
		overrides.NoColor = &noColor
	}

	return overrides
}

// setup loads configuration with the flag overrides and opens the API
func (r *RootCommand) setup(flags *pflag.FlagSet) error {
	if r.loader == nil {
		return fmt.Errorf("configuration not initialized")
	}

	cfg, err := r.loader.LoadWithOverrides(overridesFromFlags(flags))
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	r.config = cfg
	r.logger = logging.New(r.errOut, cfg.Application.Debug)

	businessAPI, closer, err := r.factory(cfg, r.logger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	r.closer = closer
	r.app = NewApp(businessAPI, cfg, r.out)
	r.logger.Debug("configuration loaded", "database", cfg.GetDatabasePath(), "user", cfg.Application.User)
	return nil
}

// run adapts a command handler to cobra, bounding it by the application timeout
func (r *RootCommand) run(build func(app *App) Command) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
		defer cancel()
		ctx = logging.ContextWithLogger(ctx, r.logger)

		return build(r.app).Execute(ctx, args)
	}
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 30 * time.Second
}

func bindEntryFlags(flags *pflag.FlagSet, opts *EntryOptions, defaults bool) {
	dateHelp, typeHelp := "Entry date as YYYY-MM-DD", "extra or compensation"
	if defaults {
		dateHelp += " (default: today)"
		typeHelp += " (default: extra)"
	}
	flags.StringVarP(&opts.Date, "date", "d", "", dateHelp)
	flags.StringVarP(&opts.Activity, "activity", "a", "", "What the time was spent on")
	flags.StringVarP(&opts.Type, "type", "t", "", typeHelp)
	flags.StringVarP(&opts.StartTime, "start", "s", "", "Start time as HH:MM")
	flags.StringVarP(&opts.EndTime, "end", "e", "", "End time as HH:MM")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.entryCommand(),
		r.balanceCommand(),
		r.reportCommand(),
		r.hoursCommand(),
		r.userCommand(),
		r.adminCommand(),
	)
}

func (r *RootCommand) entryCommand() *cobra.Command {
	entryCmd := &cobra.Command{
		Use:   "entry",
		Short: "Manage your time entries",
	}

	var addOpts EntryOptions
	addCmd := &cobra.Command{
		Use:   "add [activity]",
		Short: "Record extra hours or compensation time",
		Long: `Record a new entry for the acting user. New entries start as PENDING until
an administrator approves or rejects them.

Examples:
  ot entry add --start 18:00 --end 20:30 "Release preparation"
  ot entry add -t compensation -d 2024-03-08 -s 09:00 -e 12:00 -a "Dentist"`,
		RunE: r.run(func(app *App) Command {
			handler := NewAddEntryCommand(app)
			handler.opts = addOpts
			return handler
		}),
	}
	bindEntryFlags(addCmd.Flags(), &addOpts, true)

	var editOpts EntryOptions
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change one of your entries",
		Long:  "Change the fields given by flags; the rest keep their current value. The approval status is not changed.",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(app *App) Command {
			handler := NewEditEntryCommand(app)
			handler.opts = editOpts
			return handler
		}),
	}
	bindEntryFlags(editCmd.Flags(), &editOpts, false)

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your entries",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(app *App) Command {
			return NewDeleteEntryCommand(app)
		}),
	}

	var listOpts ListEntriesOptions
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List your entries, newest first",
		Args:  cobra.NoArgs,
		RunE: r.run(func(app *App) Command {
			handler := NewListEntriesCommand(app)
			handler.opts = listOpts
			return handler
		}),
	}
	listCmd.Flags().StringVar(&listOpts.Status, "status", "", "PENDING, APPROVED or REJECTED")
	listCmd.Flags().StringVar(&listOpts.Type, "type", "", "extra or compensation")
	listCmd.Flags().StringVar(&listOpts.From, "from", "", "Earliest date as YYYY-MM-DD")
	listCmd.Flags().StringVar(&listOpts.To, "to", "", "Latest date as YYYY-MM-DD")

	entryCmd.AddCommand(addCmd, editCmd, deleteCmd, listCmd)
	return entryCmd
}

func (r *RootCommand) balanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show your extra hours, compensation and balance",
		Args:  cobra.NoArgs,
		RunE: r.run(func(app *App) Command {
			return NewBalanceCommand(app)
		}),
	}
}

func (r *RootCommand) reportCommand() *cobra.Command {
	var opts ReportOptions
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Print a report of entries and totals",
		Long: `Print every entry of a user in date order with their totals.
Administrators may report on any user with --user.

Examples:
  ot report
  ot report --format csv > overtime.csv
  ot report --user jane@example.com`,
		Args: cobra.NoArgs,
		RunE: r.run(func(app *App) Command {
			handler := NewReportCommand(app)
			handler.opts = opts
			return handler
		}),
	}
	reportCmd.Flags().StringVarP(&opts.Format, "format", "f", "", "table or csv (overrides OT_REPORT_DEFAULT_FORMAT)")
	reportCmd.Flags().StringVarP(&opts.User, "user", "u", "", "E-mail of the user to report on (default: yourself)")
	return reportCmd
}

func (r *RootCommand) hoursCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hours <start> <end>",
		Short: "Compute the hours between two clock times",
		Long:  "Compute the hours between two HH:MM times. An end before the start counts across midnight.",
		Args:  cobra.ExactArgs(2),
		RunE: r.run(func(app *App) Command {
			return NewHoursCommand(app)
		}),
	}
}

func (r *RootCommand) userCommand() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Register and list users",
	}

	userCmd.AddCommand(
		&cobra.Command{
			Use:   "register <name> <email>",
			Short: "Register a regular user",
			Args:  cobra.ExactArgs(2),
			RunE: r.run(func(app *App) Command {
				return NewRegisterUserCommand(app)
			}),
		},
		&cobra.Command{
			Use:   "bootstrap-admin <name> <email>",
			Short: "Create the first administrator",
			Long:  "Create the first administrator, or promote the user if already registered. Refused once an administrator exists.",
			Args:  cobra.ExactArgs(2),
			RunE: r.run(func(app *App) Command {
				return NewBootstrapAdminCommand(app)
			}),
		},
		&cobra.Command{
			Use:   "list",
			Short: "List every user (administrators only)",
			Args:  cobra.NoArgs,
			RunE: r.run(func(app *App) Command {
				return NewListUsersCommand(app)
			}),
		},
	)
	return userCmd
}

func (r *RootCommand) adminCommand() *cobra.Command {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Review entries and manage users (administrators only)",
	}

	adminCmd.AddCommand(
		&cobra.Command{
			Use:   "approve <id>",
			Short: "Approve an entry",
			Args:  cobra.ExactArgs(1),
			RunE: r.run(func(app *App) Command {
				return NewApproveEntryCommand(app)
			}),
		},
		&cobra.Command{
			Use:   "reject <id>",
			Short: "Reject an entry",
			Args:  cobra.ExactArgs(1),
			RunE: r.run(func(app *App) Command {
				return NewRejectEntryCommand(app)
			}),
		},
		&cobra.Command{
			Use:   "promote <email>",
			Short: "Make a user an administrator",
			Args:  cobra.ExactArgs(1),
			RunE: r.run(func(app *App) Command {
				return NewPromoteUserCommand(app)
			}),
		},
		&cobra.Command{
			Use:   "overview",
			Short: "Show every user with their balance",
			Args:  cobra.NoArgs,
			RunE: r.run(func(app *App) Command {
				return NewOverviewCommand(app)
			}),
		},
	)
	return adminCmd
}
