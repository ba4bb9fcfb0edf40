package main

import (
	"context"
	"fmt"

	"coderr/internal/usecase"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func promoteAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote-admin <username>",
		Short: "Grant the administrator privilege to an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var userUC usecase.UserUsecase

			return runOnce(cmd.Context(), func(ctx context.Context) error {
				user, err := userUC.PromoteAdmin(ctx, args[0])
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) is now an administrator\n", user.Username, user.ID)

				return nil
			}, fx.Populate(&userUC))
		},
	}
}
