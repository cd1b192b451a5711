package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration without secrets",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "environment:         %s\n", cfg.Environment)
		fmt.Fprintf(out, "port:                %s\n", cfg.ServerPort)
		fmt.Fprintf(out, "backend:             %s\n", cfg.BackendURL)
		fmt.Fprintf(out, "payment backend:     %s\n", cfg.PaymentBackendURL)
		fmt.Fprintf(out, "backend timeout:     %s\n", cfg.BackendTimeout)
		fmt.Fprintf(out, "role cache ttl:      %s\n", cfg.RoleCacheTTL)
		fmt.Fprintf(out, "redis:               %s\n", orNone(cfg.RedisAddr))
		fmt.Fprintf(out, "storage bucket:      %s\n", orNone(cfg.StorageBucket))
		fmt.Fprintf(out, "stripe configured:   %v\n", cfg.StripeSecretKey != "")
		if cfg.BackendHostsDiverge() {
			fmt.Fprintln(out, "warning: payment calls go to a different host than the rest of the API")
		}
		return nil
	},
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
