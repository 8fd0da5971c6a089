// Package cmd implements the provctl command tree.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/provhub/provctl/internal/api"
	"github.com/provhub/provctl/internal/authz"
	"github.com/provhub/provctl/internal/session"
	"github.com/provhub/provctl/pkg/logger"
)

var (
	cfgFile string
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "provctl",
	Short: "Command-line client for the ProvHub provider platform",
	Long: `provctl talks to the ProvHub application-management API.

Applicants submit business applications, reviewers approve or reject them,
and admins manage users and providers. Log in once; the session is kept
under ~/.provctl until you log out.

Examples:
  provctl login alice@example.com
  provctl dashboard
  provctl applications list
  provctl applications approve 42 --comments "Looks good"
  provctl logout`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", colorRed("✗"), err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.provctl/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output JSON instead of tables")
	rootCmd.PersistentFlags().String("api-url", "", "ProvHub API base URL")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")

	_ = viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if dir, err := session.DefaultDir(); err == nil {
			viper.AddConfigPath(dir)
		}
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PROVCTL")
	viper.AutomaticEnv()

	viper.SetDefault("api_url", api.DefaultBaseURL)
	viper.SetDefault("timeout", "30s")
	viper.SetDefault("log_level", "warn")

	// Missing config file is fine; flags, env and defaults cover it.
	_ = viper.ReadInConfig()

	logger.Init(logger.Options{
		Level: viper.GetString("log_level"),
		JSON:  jsonOut,
	})
}

// getClient builds the shared API client from the resolved configuration.
func getClient() *api.Client {
	timeout, err := time.ParseDuration(viper.GetString("timeout"))
	if err != nil || timeout <= 0 {
		timeout = api.DefaultTimeout
	}
	return api.NewClient(
		api.WithBaseURL(viper.GetString("api_url")),
		api.WithTimeout(timeout),
		api.WithLogger(logger.Get()),
	)
}

// getSession builds the session manager and hydrates it from the store.
// Every command shares this path, so no guard decision can observe a
// manager that is still initializing.
func getSession() (*session.Manager, error) {
	dir := viper.GetString("session_dir")
	if dir == "" {
		var err error
		dir, err = session.DefaultDir()
		if err != nil {
			return nil, err
		}
	}

	mgr := session.NewManager(session.NewStore(dir), getClient(), logger.Get())
	mgr.Bootstrap()
	return mgr, nil
}

// requireRoute gates a protected command. The guard's decision is
// converted into CLI behaviour: a redirect becomes a "log in first" error
// naming the route the user was headed to, a denial becomes the
// access-denied panel and nothing from the command body runs.
func requireRoute(mgr *session.Manager, route string) error {
	route = authz.ResolveRoute(route)
	decision := authz.Guard(mgr.State(), mgr.Role(), authz.RouteRoles(route), route)

	switch decision.Kind {
	case authz.DecisionAllow:
		return nil
	case authz.DecisionLoading:
		// Bootstrap is synchronous, so this is unreachable in practice;
		// kept so the contract stays total.
		return fmt.Errorf("session still loading, try again")
	case authz.DecisionRedirectLogin:
		return fmt.Errorf("not logged in (wanted %s), run 'provctl login' first", decision.From)
	case authz.DecisionDenied:
		printAccessDenied(decision)
		return fmt.Errorf("access denied")
	default:
		return fmt.Errorf("unexpected guard decision %d", decision.Kind)
	}
}

func printAccessDenied(d authz.Decision) {
	required := make([]string, 0, len(d.Required))
	for _, r := range d.Required {
		required = append(required, string(r))
	}
	fmt.Printf("%s Access Denied\n", colorRed("✗"))
	fmt.Printf("  You don't have permission to access this page.\n")
	fmt.Printf("  Your role: %s\n", colorRed(string(d.Role)))
	fmt.Printf("  Required:  %s\n", colorRed(strings.Join(required, ", ")))
}
