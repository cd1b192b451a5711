package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "stacksphere",
	Short: "StackSphere backend-for-frontend",
	Long: `stacksphere sits between the StackSphere web app and the product API.

It verifies Firebase sessions, applies the user, moderator and admin route
guards, runs product moderation and checkout, and forwards everything else
to the backend.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load environment from this file before reading config")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
