package cli

import (
	"context"
)

// BalanceCommand handles the balance command
type BalanceCommand struct {
	app *App
}

// NewBalanceCommand creates a new balance command handler
func NewBalanceCommand(app *App) *BalanceCommand {
	return &BalanceCommand{app: app}
}

// Execute prints the acting user's extra hours, compensation and balance
func (c *BalanceCommand) Execute(ctx context.Context, args []string) error {
	balance, err := c.app.businessAPI.GetBalance(ctx, c.app.Actor())
	if err != nil {
		return c.app.errorHandler.Handle("get balance", err)
	}

	c.app.formatter.Balance(balance)
	return nil
}
