package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brockcsc/volunteer-intake/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage service configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with the built-in defaults",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "config.yaml"
		if len(args) == 1 {
			path = args[0]
		}

		if _, err := os.Stat(path); err == nil {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
		}

		if err := config.Default().Save(path); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Printf("Wrote default configuration to %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("server.port:              %d\n", cfg.Server.Port)
		fmt.Printf("redis.url:                %s\n", cfg.Redis.URL)
		fmt.Printf("redis.enabled:            %t\n", cfg.Redis.Enabled)
		fmt.Printf("discord.webhook_url:      %s\n", maskSecret(cfg.Discord.WebhookURL))
		fmt.Printf("rate_limit.enabled:       %t\n", cfg.RateLimit.Enabled)
		fmt.Printf("rate_limit.max_requests:  %d\n", cfg.RateLimit.MaxRequests)
		fmt.Printf("rate_limit.window:        %s\n", cfg.RateLimit.Window)
		fmt.Printf("intake.cutoff_date:       %s\n", cfg.Intake.CutoffDate)
		fmt.Printf("intake.enforce_cutoff:    %t\n", cfg.Intake.EnforceCutoff)
		for _, origin := range cfg.Intake.AllowedOrigins {
			fmt.Printf("intake.allowed_origins:   %s\n", origin)
		}
		return nil
	},
}

// maskSecret hides all but the tail of a credential-bearing URL.
func maskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 12 {
		return "****"
	}
	return "****" + s[len(s)-8:]
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
