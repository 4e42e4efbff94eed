package main

import (
	"golang-sms-dispatch/internal/apikey"

	"github.com/spf13/cobra"
)

var keysCount int

// keysCmd groups API key operations.
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage gateway API keys",
}

// keysGenerateCmd prints fresh API_KEY_* lines for the gateway's .env file.
var keysGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate gateway API keys",
	Long: `Generate random 32-character API keys in .env form.

Examples:
  smsctl keys generate >> .env
  smsctl keys generate -n 2`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, err := apikey.EnvLines(keysCount)
		if err != nil {
			return err
		}
		for _, l := range lines {
			printf(cmd, "%s\n", l)
		}
		return nil
	},
}

func init() {
	keysGenerateCmd.Flags().IntVarP(&keysCount, "count", "n", 5, "number of keys to generate")
	keysCmd.AddCommand(keysGenerateCmd)
}
