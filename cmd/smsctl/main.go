// Package main implements smsctl, a command-line client for sending SMS
// directly through the provider and for operating the gateway.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "smsctl",
	Short: "Send SMS and manage the SMS gateway",
	Long: `smsctl sends SMS directly through the provider, generates gateway API keys,
and runs load against a running gateway.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(loadCmd)
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
