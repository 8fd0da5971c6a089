package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/provhub/provctl/internal/api"
	"github.com/provhub/provctl/internal/authz"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Manage service providers",
	Long: `Provider record management for admins.

Examples:
  provctl providers list
  provctl providers create --business "Acme Ltd" --contact "Jane Doe" \
    --email jane@acme.test --phone "+1 555 0100"
  provctl providers delete 7`,
}

var providersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all providers",
	RunE:  runProvidersList,
}

var providersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one provider",
	Args:  cobra.ExactArgs(1),
	RunE:  runProvidersGet,
}

var providersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a provider",
	RunE:  runProvidersCreate,
}

var providersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a provider",
	Args:  cobra.ExactArgs(1),
	RunE:  runProvidersUpdate,
}

var providersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a provider",
	Args:  cobra.ExactArgs(1),
	RunE:  runProvidersDelete,
}

func init() {
	for _, c := range []*cobra.Command{providersCreateCmd, providersUpdateCmd} {
		c.Flags().String("business", "", "business name")
		c.Flags().String("contact", "", "contact person")
		c.Flags().String("email", "", "contact email")
		c.Flags().String("phone", "", "phone number")
	}
	for _, flag := range []string{"business", "contact", "email", "phone"} {
		_ = providersCreateCmd.MarkFlagRequired(flag)
		_ = providersUpdateCmd.MarkFlagRequired(flag)
	}

	providersDeleteCmd.Flags().BoolP("force", "f", false, "skip confirmation prompt")

	providersCmd.AddCommand(providersListCmd)
	providersCmd.AddCommand(providersGetCmd)
	providersCmd.AddCommand(providersCreateCmd)
	providersCmd.AddCommand(providersUpdateCmd)
	providersCmd.AddCommand(providersDeleteCmd)

	rootCmd.AddCommand(providersCmd)
}

func providerRequestFromFlags(cmd *cobra.Command) api.ProviderRequest {
	business, _ := cmd.Flags().GetString("business")
	contact, _ := cmd.Flags().GetString("contact")
	email, _ := cmd.Flags().GetString("email")
	phone, _ := cmd.Flags().GetString("phone")
	return api.ProviderRequest{
		BusinessName:  business,
		ContactPerson: contact,
		Email:         email,
		PhoneNumber:   phone,
	}
}

func runProvidersList(cmd *cobra.Command, args []string) error {
	mgr, err := getSession()
	if err != nil {
		return err
	}
	if err := requireRoute(mgr, authz.RouteAdminProviders); err != nil {
		return err
	}

	providers, err := mgr.Client().Providers.List(context.Background())
	if err != nil {
		printError(err)
		return fmt.Errorf("failed to load providers, please retry")
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"providers": providers, "count": len(providers)})
	}

	if len(providers) == 0 {
		fmt.Println("No providers found")
		return nil
	}

	w := newTable()
	printTableHeader(w, "ID", "BUSINESS", "CONTACT", "EMAIL", "PHONE")
	for _, p := range providers {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			p.ID,
			truncate(p.BusinessName, 28),
			truncate(p.ContactPerson, 20),
			p.Email,
			p.PhoneNumber,
		)
	}
	return w.Flush()
}

func runProvidersGet(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid provider id %q", args[0])
	}

	mgr, err := getSession()
	if err != nil {
		return err
	}
	if err := requireRoute(mgr, authz.RouteAdminProviders); err != nil {
		return err
	}

	p, err := mgr.Client().Providers.Get(context.Background(), id)
	if err != nil {
		printError(err)
		return fmt.Errorf("failed to load provider, please retry")
	}

	if jsonOut {
		return printJSON(p)
	}

	fmt.Printf("ID:       %d\n", p.ID)
	fmt.Printf("Business: %s\n", p.BusinessName)
	fmt.Printf("Contact:  %s\n", p.ContactPerson)
	fmt.Printf("Email:    %s\n", p.Email)
	fmt.Printf("Phone:    %s\n", p.PhoneNumber)
	return nil
}

func runProvidersCreate(cmd *cobra.Command, args []string) error {
	mgr, err := getSession()
	if err != nil {
		return err
	}
	if err := requireRoute(mgr, authz.RouteAdminProviders); err != nil {
		return err
	}

	userID, ok := mgr.UserID()
	if !ok {
		return errUnidentified()
	}

	p, err := mgr.Client().Providers.Create(context.Background(), userID, providerRequestFromFlags(cmd))
	if err != nil {
		printError(err)
		return fmt.Errorf("failed to create provider")
	}

	if jsonOut {
		return printJSON(p)
	}
	fmt.Printf("%s Provider #%d created: %s\n", colorGreen("✓"), p.ID, p.BusinessName)
	return nil
}

func runProvidersUpdate(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid provider id %q", args[0])
	}

	mgr, err := getSession()
	if err != nil {
		return err
	}
	if err := requireRoute(mgr, authz.RouteAdminProviders); err != nil {
		return err
	}

	p, err := mgr.Client().Providers.Update(context.Background(), id, providerRequestFromFlags(cmd))
	if err != nil {
		printError(err)
		return fmt.Errorf("failed to update provider")
	}

	if jsonOut {
		return printJSON(p)
	}
	fmt.Printf("%s Provider #%d updated\n", colorGreen("✓"), p.ID)
	return nil
}

func runProvidersDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid provider id %q", args[0])
	}

	force, _ := cmd.Flags().GetBool("force")
	if !force && !confirm(fmt.Sprintf("Delete provider %d? This cannot be undone.", id)) {
		fmt.Println("Aborted")
		return nil
	}

	mgr, err := getSession()
	if err != nil {
		return err
	}
	if err := requireRoute(mgr, authz.RouteAdminProviders); err != nil {
		return err
	}

	if err := mgr.Client().Providers.Delete(context.Background(), id); err != nil {
		printError(err)
		return fmt.Errorf("failed to delete provider")
	}

	if jsonOut {
		return printJSON(map[string]string{"status": "deleted"})
	}
	fmt.Printf("%s Provider #%d deleted\n", colorGreen("✓"), id)
	return nil
}
