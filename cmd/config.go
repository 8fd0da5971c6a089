package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/provhub/provctl/internal/session"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and write provctl configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// effectiveConfig is the subset of settings provctl actually reads.
type effectiveConfig struct {
	APIURL     string `yaml:"api_url"`
	Timeout    string `yaml:"timeout"`
	LogLevel   string `yaml:"log_level"`
	SessionDir string `yaml:"session_dir,omitempty"`
}

func currentConfig() effectiveConfig {
	return effectiveConfig{
		APIURL:     viper.GetString("api_url"),
		Timeout:    viper.GetString("timeout"),
		LogLevel:   viper.GetString("log_level"),
		SessionDir: viper.GetString("session_dir"),
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := currentConfig()
	if jsonOut {
		return printJSON(cfg)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if file := viper.ConfigFileUsed(); file != "" {
		fmt.Printf("# %s\n", file)
	}
	fmt.Print(string(out))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	dir, err := session.DefaultDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	out, err := yaml.Marshal(currentConfig())
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("%s Wrote %s\n", colorGreen("✓"), path)
	return nil
}
