package main

import (
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/dtroode/account-server/internal/model"
)

// NewAddUserCmd creates the add-user subcommand.
func NewAddUserCmd(connect Connector) *cobra.Command {
	var (
		params  model.RegisterParams
		confirm bool
	)

	cmd := &cobra.Command{
		Use:   "add-user",
		Short: "Register an account",
		Long:  `Register an account with a pending email. With --confirm the email is confirmed immediately.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, release, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			account, err := accounts.Register(cmd.Context(), params)
			if err != nil {
				return oops.Code("ADD_USER_FAILED").With("email", params.Email).Wrap(err)
			}
			cmd.Printf("Registered %s (%s)\n", account.PendingEmail, account.PublicID)

			if !confirm {
				return nil
			}

			if _, err := accounts.ConfirmEmailForced(cmd.Context(), account.PendingEmail, time.Time{}); err != nil {
				return oops.Code("CONFIRM_FAILED").With("email", account.PendingEmail).Wrap(err)
			}
			cmd.Printf("Confirmed %s\n", account.PendingEmail)
			return nil
		},
	}

	cmd.Flags().StringVar(&params.Email, "email", "", "account email")
	cmd.Flags().StringVar(&params.DisplayName, "display-name", "", "public display name")
	cmd.Flags().StringVar(&params.Password, "password", "", "initial password")
	cmd.Flags().StringVar(&params.Phone, "phone", "", "phone number")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "confirm the email right away")
	for _, name := range []string{"email", "display-name", "password", "phone"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

// NewConfirmCmd creates the confirm subcommand.
func NewConfirmCmd(connect Connector) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "confirm",
		Short: "Confirm a pending email without a token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, release, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			account, err := accounts.ConfirmEmailForced(cmd.Context(), email, time.Time{})
			if err != nil {
				return oops.Code("CONFIRM_FAILED").With("email", email).Wrap(err)
			}

			cmd.Printf("Confirmed %s (%s)\n", *account.ConfirmedEmail, account.PublicID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "pending email to confirm")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
