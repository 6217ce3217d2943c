package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/brockcsc/volunteer-intake/internal/ratelimit"
)

var ratelimitCmd = &cobra.Command{
	Use:   "ratelimit",
	Short: "Inspect and reset rate limit budgets",
	Long:  "Read or clear the per-IP sliding window records in Redis",
}

var ratelimitShowCmd = &cobra.Command{
	Use:   "show [ip]",
	Short: "Show the recorded attempts for an IP",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ip := args[0]

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		raw, err := store.Get(ctx, ratelimit.Key(ip))
		if err != nil {
			return fmt.Errorf("failed to read record: %w", err)
		}
		if raw == "" {
			fmt.Printf("No recorded attempts for %s\n", ip)
			return nil
		}

		var rec ratelimit.Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return fmt.Errorf("corrupt record for %s: %w", ip, err)
		}

		cutoff := time.Now().Add(-cfg.RateLimit.Window).UnixMilli()
		inWindow := 0
		for _, ts := range rec.Requests {
			if ts > cutoff {
				inWindow++
			}
		}

		fmt.Printf("IP:          %s\n", ip)
		fmt.Printf("Attempts:    %d recorded, %d within the last %s\n",
			len(rec.Requests), inWindow, cfg.RateLimit.Window)
		fmt.Printf("Limit:       %d per %s\n", cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
		for _, ts := range rec.Requests {
			fmt.Printf("  %s\n", time.UnixMilli(ts).Format(time.RFC3339))
		}
		return nil
	},
}

var ratelimitResetCmd = &cobra.Command{
	Use:   "reset [ip]",
	Short: "Clear the recorded attempts for an IP",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ip := args[0]

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := store.Delete(ctx, ratelimit.Key(ip)); err != nil {
			return fmt.Errorf("failed to reset: %w", err)
		}
		fmt.Printf("Rate limit reset for %s\n", ip)
		return nil
	},
}

func openStore() (ratelimit.Store, error) {
	store, err := ratelimit.NewRedisStore(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.URL, err)
	}
	return store, nil
}

func init() {
	ratelimitCmd.AddCommand(ratelimitShowCmd)
	ratelimitCmd.AddCommand(ratelimitResetCmd)
}
