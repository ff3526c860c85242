package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the pet's current needs",
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := callAPI("GET", "/api/status", nil)
		if err != nil {
			return err
		}
		printStatus(body)
		return nil
	},
}

func careCommand(use, short, path string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := callAPI("POST", path, nil)
			if err != nil {
				return err
			}
			printStatus(body)
			return nil
		},
	}
}

var (
	feedCmd  = careCommand("feed", "Feed the pet", "/api/feed")
	cleanCmd = careCommand("clean", "Give the pet a bath", "/api/clean")
	playCmd  = careCommand("play", "Play with the pet", "/api/play")
)

var reviveCmd = &cobra.Command{
	Use:   "revive",
	Short: "Bring a dead pet back to life",
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := callAPI("POST", "/api/revive", nil)
		if err != nil {
			return err
		}
		fmt.Println("welcome back!")
		printStatus(body)
		return nil
	},
}
