package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/provhub/provctl/internal/api"
	"github.com/provhub/provctl/internal/authz"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage platform accounts (admin only)",
	Long: `Account administration.

Examples:
  provctl users list
  provctl users create carol@example.com --name "Carol C." --role REVIEWER
  provctl users delete 12`,
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts",
	RunE:  runUsersList,
}

var usersCreateCmd = &cobra.Command{
	Use:   "create <email>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersCreate,
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersUpdate,
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersDelete,
}

func init() {
	usersListCmd.Flags().String("role", "", "filter by role")

	for _, c := range []*cobra.Command{usersCreateCmd, usersUpdateCmd} {
		c.Flags().String("name", "", "full name")
		c.Flags().String("role", "", "account role (ADMIN, REVIEWER, APPLICANT)")
		c.Flags().String("password", "", "password")
	}
	_ = usersCreateCmd.MarkFlagRequired("name")
	_ = usersCreateCmd.MarkFlagRequired("role")

	usersUpdateCmd.Flags().String("email", "", "email address")
	_ = usersUpdateCmd.MarkFlagRequired("name")
	_ = usersUpdateCmd.MarkFlagRequired("email")
	_ = usersUpdateCmd.MarkFlagRequired("role")

	usersDeleteCmd.Flags().BoolP("force", "f", false, "skip confirmation prompt")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersDeleteCmd)

	rootCmd.AddCommand(usersCmd)
}

func runUsersList(cmd *cobra.Command, args []string) error {
	mgr, err := getSession()
	if err != nil {
		return err
	}
	if err := requireRoute(mgr, authz.RouteAdminUsers); err != nil {
		return err
	}

	users, err := mgr.Client().Users.List(context.Background())
	if err != nil {
		printError(err)
		return fmt.Errorf("failed to load users, please retry")
	}

	if roleFilter, _ := cmd.Flags().GetString("role"); roleFilter != "" {
		role, ok := authz.ParseRole(roleFilter)
		if !ok {
			return fmt.Errorf("unknown role %q", roleFilter)
		}
		filtered := users[:0]
		for _, u := range users {
			if u.Role == role {
				filtered = append(filtered, u)
			}
		}
		users = filtered
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"users": users, "count": len(users)})
	}

	if len(users) == 0 {
		fmt.Println("No users found")
		return nil
	}

	w := newTable()
	printTableHeader(w, "ID", "NAME", "EMAIL", "ROLE")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			u.ID,
			truncate(u.DisplayName(), 24),
			u.Email,
			u.Role.Format(),
		)
	}
	return w.Flush()
}

func runUsersCreate(cmd *cobra.Command, args []string) error {
	email := args[0]
	name, _ := cmd.Flags().GetString("name")

	roleStr, _ := cmd.Flags().GetString("role")
	role, ok := authz.ParseRole(roleStr)
	if !ok {
		return fmt.Errorf("unknown role %q (want ADMIN, REVIEWER or APPLICANT)", roleStr)
	}

	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		var err error
		password, err = promptPassword("Password for new user")
		if err != nil {
			return err
		}
	}

	mgr, err := getSession()
	if err != nil {
		return err
	}
	if err := requireRoute(mgr, authz.RouteAdminUsers); err != nil {
		return err
	}

	user, err := mgr.Client().Users.Create(context.Background(), api.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	})
	if err != nil {
		printError(err)
		return fmt.Errorf("failed to create user")
	}

	if jsonOut {
		return printJSON(user)
	}
	fmt.Printf("%s User #%d created: %s (%s)\n", colorGreen("✓"), user.ID, user.Email, user.Role.Format())
	return nil
}

func runUsersUpdate(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid user id %q", args[0])
	}

	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	roleStr, _ := cmd.Flags().GetString("role")
	role, ok := authz.ParseRole(roleStr)
	if !ok {
		return fmt.Errorf("unknown role %q (want ADMIN, REVIEWER or APPLICANT)", roleStr)
	}

	mgr, err := getSession()
	if err != nil {
		return err
	}
	if err := requireRoute(mgr, authz.RouteAdminUsers); err != nil {
		return err
	}

	user, err := mgr.Client().Users.Update(context.Background(), id, api.UpdateUserRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	})
	if err != nil {
		printError(err)
		return fmt.Errorf("failed to update user")
	}

	if jsonOut {
		return printJSON(user)
	}
	fmt.Printf("%s User #%d updated\n", colorGreen("✓"), user.ID)
	return nil
}

func runUsersDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid user id %q", args[0])
	}

	force, _ := cmd.Flags().GetBool("force")
	if !force && !confirm(fmt.Sprintf("Delete user %d?", id)) {
		fmt.Println("Aborted")
		return nil
	}

	mgr, err := getSession()
	if err != nil {
		return err
	}
	if err := requireRoute(mgr, authz.RouteAdminUsers); err != nil {
		return err
	}

	if err := mgr.Client().Users.Delete(context.Background(), id); err != nil {
		printError(err)
		return fmt.Errorf("failed to delete user")
	}

	if jsonOut {
		return printJSON(map[string]string{"status": "deleted"})
	}
	fmt.Printf("%s User #%d deleted\n", colorGreen("✓"), id)
	return nil
}
