package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/hellojohn-identity/internal/domain/repository"
)

func newClaimCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim",
		Short: "Claims de usuarios",
	}
	cmd.AddCommand(newClaimAddCmd(a), newClaimUsersCmd(a))
	return cmd
}

func newClaimAddCmd(a *app) *cobra.Command {
	var claimType, claimValue string
	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Agregar un claim a un usuario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s := a.identity()
			u, err := loadUser(ctx, s, args[0])
			if err != nil {
				return err
			}
			s.AddClaims(u, repository.Claim{Type: claimType, Value: claimValue})
			if err := s.SaveChanges(ctx); err != nil {
				return err
			}
			fmt.Printf("Claim %s=%s added to %s\n", claimType, claimValue, args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&claimType, "type", "", "Tipo del claim")
	cmd.Flags().StringVar(&claimValue, "value", "", "Valor del claim")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newClaimUsersCmd(a *app) *cobra.Command {
	var claimType, claimValue string
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Listar usuarios con un claim (type y value)",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := a.identity().UsersForClaim(cmd.Context(), &repository.Claim{Type: claimType, Value: claimValue})
			if err != nil {
				return err
			}
			if a.out == "json" {
				return a.printJSON(users)
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSERNAME")
			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\n", u.ID, u.UserName)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&claimType, "type", "", "Tipo del claim")
	cmd.Flags().StringVar(&claimValue, "value", "", "Valor del claim")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}
