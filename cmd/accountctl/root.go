package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/dtroode/account-server/internal/model"
)

// AccountService is the part of the lifecycle service the CLI drives.
type AccountService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.Account, error)
	ConfirmEmailForced(ctx context.Context, email string, now time.Time) (model.Account, error)
}

// Connector opens the account service. The returned func releases its resources.
type Connector func(ctx context.Context) (AccountService, func(), error)

// NewRootCmd creates the root command for the account CLI.
func NewRootCmd(connect Connector) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "accountctl",
		Short:        "Manage user accounts",
		Long:         `Administrative commands that run the account lifecycle directly against the configured database.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewAddUserCmd(connect))
	cmd.AddCommand(NewConfirmCmd(connect))

	return cmd
}
