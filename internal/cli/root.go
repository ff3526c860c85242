package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "duckpet",
	Short: "A persistent desktop pet with a mind of its own",
	Long:  "Duckpet runs the pet's lifecycle engine as a local daemon. The needs decay in real time, neglect is fatal, and revival is always possible.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiAddr, "addr", "http://127.0.0.1:38488", "address of the running duckpet daemon")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(reviveCmd)
	rootCmd.AddCommand(chatCmd)
}
