package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/locallens/contact-backend/internal/config"
	"github.com/locallens/contact-backend/internal/lib/email"
)

var previewCmd = &cobra.Command{
	Use:       "preview [owner|confirmation]",
	Short:     "Print the enquiry emails for a sample submission",
	Long:      `Render the owner notification and/or the confirmation for a sample enquiry and print them as they would go over the wire. Nothing is sent.`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(email.TemplateOwnerNotification), string(email.TemplateConfirmation)},
	RunE: func(cmd *cobra.Command, args []string) error {
		mail := previewMailConfig()

		templates := email.Templates
		if len(args) == 1 {
			templates = []email.Template{email.Template(args[0])}
		}

		now := time.Now()
		for i, tmpl := range templates {
			msg, err := email.Render(tmpl, mail, email.PreviewEnquiry, now)
			if err != nil {
				return err
			}

			raw, err := msg.Bytes()
			if err != nil {
				return err
			}

			if i > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "--- %s ---\n%s\n", tmpl, raw)
		}

		return nil
	},
}

// previewMailConfig uses the configured sender when the environment
// loads cleanly, and a placeholder otherwise.
func previewMailConfig() config.MailConfig {
	cfg, err := config.LoadConfig()
	if err != nil || cfg.Mail.User == "" {
		return config.MailConfig{User: email.PreviewSender, Recipient: email.PreviewSender}
	}
	return cfg.Mail
}
