// Command contactd is the contact form backend for the LocalLens website.
//
// It accepts enquiries on POST /submit, logs them and emails the site
// owner and the enquirer.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "contactd",
	Short: "Contact form backend",
	Long: `contactd accepts contact form enquiries over HTTP, records them in the
submission log and sends an owner notification plus a confirmation email.

Configuration is read from the environment (and a .env file if present).
Without a subcommand it runs serve.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
}

func init() {
	rootCmd.RunE = runServe
	addServeFlags(rootCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(previewCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
