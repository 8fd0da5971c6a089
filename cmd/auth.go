package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/provhub/provctl/internal/authz"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in to ProvHub",
	Long: `Exchange credentials for a session. The token and identity are stored
under ~/.provctl and reused by every later command until you log out.

Examples:
  provctl login alice@example.com
  provctl login alice@example.com --password-stdin < secret.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register <email>",
	Short: "Register a new account",
	Long: `Create an account. Registration does not log you in; run
'provctl login' afterwards.

Examples:
  provctl register bob@example.com --name "Bob B." --role APPLICANT`,
	Args: cobra.ExactArgs(1),
	RunE: runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().String("password", "", "password (prompted when omitted)")
	loginCmd.Flags().Bool("password-stdin", false, "read the password from stdin")

	registerCmd.Flags().String("name", "", "full name")
	registerCmd.Flags().String("role", string(authz.RoleApplicant), "account role (ADMIN, REVIEWER, APPLICANT)")
	registerCmd.Flags().String("password", "", "password (prompted when omitted)")
	_ = registerCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func resolvePassword(cmd *cobra.Command) (string, error) {
	password, _ := cmd.Flags().GetString("password")
	if password != "" {
		return password, nil
	}
	if fromStdin, _ := cmd.Flags().GetBool("password-stdin"); fromStdin {
		var line string
		if _, err := fmt.Scanln(&line); err != nil {
			return "", fmt.Errorf("read password from stdin: %w", err)
		}
		return line, nil
	}
	return promptPassword("Password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	email := args[0]

	password, err := resolvePassword(cmd)
	if err != nil {
		return err
	}

	mgr, err := getSession()
	if err != nil {
		return err
	}

	result := mgr.Login(context.Background(), email, password)
	if !result.Success {
		return fmt.Errorf("%s", result.Error)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"user":         result.User,
			"target_route": result.TargetRoute,
		})
	}

	fmt.Printf("%s Logged in as %s (%s)\n", colorGreen("✓"), result.User.Email, result.User.Role.Format())
	fmt.Printf("  Landing: %s\n", result.TargetRoute)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	email := args[0]
	name, _ := cmd.Flags().GetString("name")

	roleStr, _ := cmd.Flags().GetString("role")
	role, ok := authz.ParseRole(roleStr)
	if !ok {
		return fmt.Errorf("unknown role %q (want ADMIN, REVIEWER or APPLICANT)", roleStr)
	}

	password, err := resolvePassword(cmd)
	if err != nil {
		return err
	}

	mgr, err := getSession()
	if err != nil {
		return err
	}

	result := mgr.Register(context.Background(), name, email, password, role)
	if !result.Success {
		return fmt.Errorf("%s", result.Error)
	}

	if jsonOut {
		return printJSON(map[string]string{"status": "registered", "email": email})
	}

	fmt.Printf("%s Account created for %s. Run 'provctl login %s' to sign in.\n", colorGreen("✓"), email, email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	mgr, err := getSession()
	if err != nil {
		return err
	}

	mgr.Logout()

	if jsonOut {
		return printJSON(map[string]string{"status": "logged_out"})
	}
	fmt.Printf("%s Logged out\n", colorGreen("✓"))
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	mgr, err := getSession()
	if err != nil {
		return err
	}

	id := mgr.Identity()
	if id == nil {
		if jsonOut {
			return printJSON(map[string]interface{}{"authenticated": false})
		}
		fmt.Println("Not logged in")
		return nil
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"authenticated": true,
			"user":          id,
			"token_expired": mgr.TokenExpired(),
			"home":          authz.DefaultRouteFor(id.Role),
		})
	}

	fmt.Printf("Email: %s\n", id.Email)
	fmt.Printf("Role:  %s\n", id.Role.Format())
	fmt.Printf("ID:    %d\n", id.ID)
	if mgr.TokenExpired() {
		fmt.Printf("%s Session token has expired, log in again.\n", colorYellow("⚠"))
	}
	return nil
}
