package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "bonusctl",
		Short: "Operate the annual bonus engine",
		Long: `bonusctl runs the bonus engine outside the HTTP server.

Examples:
  bonusctl calculate --fixture testdata/acme.yaml --year 2025
  bonusctl calculate --tenant 5b1c... --employee 9f02... --year 2025
  bonusctl policy validate weights.yaml
  bonusctl token --tenant 5b1c... --role hr`,
		SilenceUsage: true,
	}
	root.AddCommand(newCalculateCommand())
	root.AddCommand(newPolicyCommand())
	root.AddCommand(newTokenCommand())
	return root
}
