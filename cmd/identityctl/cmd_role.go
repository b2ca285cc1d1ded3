package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/hellojohn-identity/internal/domain/repository"
)

func newRoleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role",
		Short: "Gestión de roles y membresías",
	}
	cmd.AddCommand(
		newRoleCreateCmd(a),
		newRoleDeleteCmd(a),
		newRoleAssignCmd(a),
		newRoleUnassignCmd(a),
		newRoleMembersCmd(a),
		newRoleListCmd(a),
	)
	return cmd
}

func newRoleCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Crear un rol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.identity()
			r := repository.NewRole(args[0])
			s.SetNormalizedRoleName(r, normalize(args[0]))
			if err := s.CreateRole(cmd.Context(), r); err != nil {
				if repository.IsConflict(err) {
					return fmt.Errorf("role %q already exists", args[0])
				}
				return err
			}
			fmt.Printf("Role created: %s (%s)\n", r.Name, r.ID)
			return nil
		},
	}
}

func newRoleDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Eliminar un rol (y quitarlo de todos los usuarios)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.identity()
			r, err := s.FindRoleByName(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if r == nil {
				return fmt.Errorf("role %q not found", args[0])
			}
			if err := s.DeleteRole(cmd.Context(), r); err != nil {
				return err
			}
			fmt.Printf("Role deleted: %s\n", args[0])
			return nil
		},
	}
}

func newRoleAssignCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <username> <role>",
		Short: "Agregar un usuario a un rol",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s := a.identity()
			u, err := loadUser(ctx, s, args[0])
			if err != nil {
				return err
			}
			if err := s.AddUserToRole(ctx, u, args[1]); err != nil {
				return err
			}
			if err := s.SaveChanges(ctx); err != nil {
				return err
			}
			fmt.Printf("Role %s assigned to %s\n", args[1], args[0])
			return nil
		},
	}
}

func newRoleUnassignCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unassign <username> <role>",
		Short: "Quitar un usuario de un rol",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s := a.identity()
			u, err := loadUser(ctx, s, args[0])
			if err != nil {
				return err
			}
			if err := s.RemoveUserFromRole(ctx, u, args[1]); err != nil {
				return err
			}
			if err := s.SaveChanges(ctx); err != nil {
				return err
			}
			fmt.Printf("Role %s removed from %s\n", args[1], args[0])
			return nil
		},
	}
}

func newRoleMembersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "members <role>",
		Short: "Listar los usuarios de un rol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := a.identity().UsersInRole(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.out == "json" {
				return a.printJSON(users)
			}
			if len(users) == 0 {
				fmt.Println("No members found.")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL")
			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\t%s\n", u.ID, u.UserName, u.Email)
			}
			return w.Flush()
		},
	}
}

func newRoleListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Listar roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			roles, err := a.identity().Roles(cmd.Context())
			if err != nil {
				return err
			}
			if a.out == "json" {
				return a.printJSON(roles)
			}
			if len(roles) == 0 {
				fmt.Println("No roles found.")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCLAIMS")
			for _, r := range roles {
				fmt.Fprintf(w, "%s\t%s\t%d\n", r.ID, r.Name, len(r.Claims))
			}
			return w.Flush()
		},
	}
}
