package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "gateway",
	Short: "VendorLink gateway - request proxying and OAuth relay",
	Long: `The VendorLink gateway sits between clients and the platform's backends.

It resolves caller identity from the session store, forwards resource
requests to the general backend and the AI backend, translates upstream
responses into uniform JSON, and relays the Outlook OAuth callback flow.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "gateway.yaml", "config file path")
}
