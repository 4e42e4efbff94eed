package main

import (
	"io"
	"log/slog"
	"os"

	"golang-sms-dispatch/internal/adapters/provider/clicksend"
	"golang-sms-dispatch/internal/app"
	"golang-sms-dispatch/internal/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var okMark = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render("✓")

var (
	sendSender    string
	sendRecipient string
	sendMessage   string
	sendConfig    string
	sendVerbose   bool
)

// sendCmd delivers one SMS synchronously.
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send one SMS directly through the provider",
	Long: `Send one SMS directly through the provider. The recipient must be E.164 and the
sender must be a verified own number, a dedicated number, or a registered alpha tag.

Provider credentials are read from ~/.config/messaging/config.toml:

  api_key  = "..."
  username = "..."
  base_url = "https://rest.clicksend.com"
  version  = "v3"

Examples:
  smsctl send --sender +61411111111 --recipient +61422222222 --message "hello"`,
	Args: cobra.NoArgs,
	RunE: runSend,
}

func init() {
	sendCmd.Flags().StringVarP(&sendSender, "sender", "s", "", "sender number or alpha tag")
	sendCmd.Flags().StringVarP(&sendRecipient, "recipient", "r", "", "recipient number in E.164")
	sendCmd.Flags().StringVarP(&sendMessage, "message", "m", "", "message body")
	sendCmd.Flags().StringVar(&sendConfig, "config", "", "provider config file (default ~/.config/messaging/config.toml)")
	sendCmd.Flags().BoolVarP(&sendVerbose, "verbose", "v", false, "log provider calls to stderr")
	for _, f := range []string{"sender", "recipient", "message"} {
		_ = sendCmd.MarkFlagRequired(f)
	}
}

func runSend(cmd *cobra.Command, args []string) error {
	path := sendConfig
	if path == "" {
		var err error
		if path, err = config.DefaultProviderFile(); err != nil {
			return err
		}
	}
	p, err := config.LoadProviderFile(path)
	if err != nil {
		return err
	}

	var w io.Writer = io.Discard
	if sendVerbose {
		w = os.Stderr
	}
	log := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))

	client, err := clicksend.New(clicksend.Config{
		APIKey:   p.APIKey,
		Username: p.Username,
		BaseURL:  p.BaseURL,
		Version:  p.Version,
		Timeout:  p.Timeout,
	}, log)
	if err != nil {
		return err
	}

	authorizer := app.NewSenderAuthorizer(client, app.DirectoryPolicyStrict, log)
	sender := app.NewDirectSender(authorizer, client, log)

	printf(cmd, "Sending SMS...\n")
	if err := sender.Send(cmd.Context(), sendRecipient, sendSender, sendMessage); err != nil {
		return err
	}
	printf(cmd, "%s   SMS sent successfully!\n", okMark)
	return nil
}
