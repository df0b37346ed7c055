package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check a running antivibe daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			addr = strings.TrimRight(addr, "/")

			client := &http.Client{Timeout: 5 * time.Second}
			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, addr+"/api/health", nil)
			if err != nil {
				return fmt.Errorf("build request: %w", err)
			}

			resp, err := client.Do(req)
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Status:  unreachable")
				return fmt.Errorf("daemon not reachable at %s: %w", addr, err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("health check returned %s", resp.Status)
			}

			var health struct {
				Status  string `json:"status"`
				Message string `json:"message"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
				return fmt.Errorf("parse health: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Status:  %s\n", health.Status)
			fmt.Fprintf(out, "Message: %s\n", health.Message)
			fmt.Fprintf(out, "Address: %s\n", addr)
			if id := resp.Header.Get("X-Request-ID"); id != "" {
				fmt.Fprintf(out, "Request: %s\n", id)
			}
			return nil
		},
	}

	cmd.Flags().String("addr", defaultDaemonAddr, "Daemon base URL")
	return cmd
}
