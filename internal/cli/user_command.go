package cli

import (
	"context"
)

// RegisterUserCommand handles user register
type RegisterUserCommand struct {
	app *App
}

// NewRegisterUserCommand creates a new user register handler
func NewRegisterUserCommand(app *App) *RegisterUserCommand {
	return &RegisterUserCommand{app: app}
}

// Execute registers a regular user from a name and an e-mail address
func (c *RegisterUserCommand) Execute(ctx context.Context, args []string) error {
	user, err := c.app.businessAPI.RegisterUser(ctx, args[0], args[1])
	if err != nil {
		return c.app.errorHandler.Handle("register user", err)
	}
	c.app.formatter.Success("Registered %s <%s>", user.Name, user.Email)
	return nil
}

// BootstrapAdminCommand handles user bootstrap-admin
type BootstrapAdminCommand struct {
	app *App
}

// NewBootstrapAdminCommand creates a new user bootstrap-admin handler
func NewBootstrapAdminCommand(app *App) *BootstrapAdminCommand {
	return &BootstrapAdminCommand{app: app}
}

// Execute creates the first administrator
func (c *BootstrapAdminCommand) Execute(ctx context.Context, args []string) error {
	user, err := c.app.businessAPI.BootstrapAdmin(ctx, args[0], args[1])
	if err != nil {
		return c.app.errorHandler.Handle("bootstrap administrator", err)
	}
	c.app.formatter.Success("%s <%s> is now an administrator", user.Name, user.Email)
	return nil
}

// ListUsersCommand handles user list
type ListUsersCommand struct {
	app *App
}

// NewListUsersCommand creates a new user list handler
func NewListUsersCommand(app *App) *ListUsersCommand {
	return &ListUsersCommand{app: app}
}

// Execute lists every user; administrators only
func (c *ListUsersCommand) Execute(ctx context.Context, args []string) error {
	users, err := c.app.businessAPI.ListUsers(ctx, c.app.Actor())
	if err != nil {
		return c.app.errorHandler.Handle("list users", err)
	}
	c.app.formatter.UserTable(users)
	return nil
}
