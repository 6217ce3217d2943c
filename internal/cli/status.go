package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check intake service health",
	Long:  "Query the service's liveness and readiness endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		serverURL, _ := cmd.Flags().GetString("server")
		if serverURL == "" {
			serverURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
		}

		client := &http.Client{Timeout: 5 * time.Second}

		for _, probe := range []string{"/healthz", "/readyz"} {
			status, body, err := fetchProbe(client, serverURL+probe)
			if err != nil {
				fmt.Printf("%-10s unreachable: %v\n", probe, err)
				continue
			}
			fmt.Printf("%-10s %d %s\n", probe, status, body)
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().String("server", "", "service base URL (default: http://localhost:<port>)")
}

func fetchProbe(client *http.Client, url string) (int, string, error) {
	resp, err := client.Get(url)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return resp.StatusCode, "", err
	}

	// Compact the JSON body onto one line for readability.
	var buf map[string]any
	if json.Unmarshal(data, &buf) == nil {
		if compact, err := json.Marshal(buf); err == nil {
			return resp.StatusCode, string(compact), nil
		}
	}
	return resp.StatusCode, string(data), nil
}
