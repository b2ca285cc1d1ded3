package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/dropDatabas3/hellojohn-identity/internal/domain/repository"
	"github.com/dropDatabas3/hellojohn-identity/internal/identity"
)

func newUserCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Gestión de usuarios",
	}
	cmd.AddCommand(newUserCreateCmd(a), newUserGetCmd(a), newUserDeleteCmd(a))
	return cmd
}

func newUserCreateCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "create <username>",
		Short: "Crear un usuario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.identity()
			u := &repository.User{}
			s.SetUserName(u, args[0])
			s.SetNormalizedUserName(u, normalize(args[0]))
			if email != "" {
				s.SetEmail(u, email)
				s.SetNormalizedEmail(u, normalize(email))
			}
			if password != "" {
				hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
				if err != nil {
					return err
				}
				h := string(hash)
				s.SetPasswordHash(u, &h)
			}
			if err := s.CreateUser(cmd.Context(), u); err != nil {
				if repository.IsConflict(err) {
					return fmt.Errorf("user name or email already taken: %w", err)
				}
				return err
			}
			if a.out == "json" {
				return a.printJSON(u)
			}
			fmt.Printf("User created: %s (%s)\n", u.UserName, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email del usuario")
	cmd.Flags().StringVar(&password, "password", "", "Password (se guarda hasheado con bcrypt)")
	return cmd
}

func newUserGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <username>",
		Short: "Mostrar un usuario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.identity()
			u, err := loadUser(cmd.Context(), s, args[0])
			if err != nil {
				return err
			}
			if a.out == "json" {
				return a.printJSON(u)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID\t%s\n", u.ID)
			fmt.Fprintf(w, "USERNAME\t%s\n", u.UserName)
			fmt.Fprintf(w, "EMAIL\t%s\n", u.Email)
			fmt.Fprintf(w, "HAS PASSWORD\t%t\n", s.HasPassword(u))
			fmt.Fprintf(w, "ROLES\t%s\n", strings.Join(s.UserRoles(u), ", "))
			fmt.Fprintf(w, "CLAIMS\t%d\n", len(s.Claims(u)))
			fmt.Fprintf(w, "LOGINS\t%d\n", len(s.Logins(u)))
			return w.Flush()
		},
	}
}

func newUserDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <username>",
		Short: "Eliminar un usuario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.identity()
			u, err := loadUser(cmd.Context(), s, args[0])
			if err != nil {
				return err
			}
			if err := s.DeleteUser(cmd.Context(), u); err != nil {
				return err
			}
			fmt.Printf("User deleted: %s\n", args[0])
			return nil
		},
	}
}

// loadUser resuelve un usuario por nombre o falla.
func loadUser(ctx context.Context, s *identity.Store, name string) (*repository.User, error) {
	u, err := s.FindUserByName(ctx, normalize(name))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %q not found", name)
	}
	return u, nil
}
