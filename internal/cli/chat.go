package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var chatAttachContext bool

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Talk to the pet",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := callAPI("POST", "/api/chat", map[string]any{
			"message":        strings.Join(args, " "),
			"attach_context": chatAttachContext,
		})
		if err != nil {
			return err
		}
		fmt.Println(body["reply"])
		return nil
	},
}

var chatClearCmd = &cobra.Command{
	Use:   "forget",
	Short: "Wipe the pet's conversation memory",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := callAPI("DELETE", "/api/chat/history", nil); err != nil {
			return err
		}
		fmt.Println("history cleared")
		return nil
	},
}

func init() {
	chatCmd.Flags().BoolVar(&chatAttachContext, "look", false, "attach a screen capture so the pet can see")
	chatCmd.AddCommand(chatClearCmd)
}
