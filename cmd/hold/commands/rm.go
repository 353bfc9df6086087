package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var RmCmd = &cobra.Command{
	Use:   "rm <key>",
	Short: "Delete a blob",
	Long:  `Deletes the blob stored under the key. Deleting a key that does not exist is a success.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]

		provider, err := newProvider(cmd.Context())
		if err != nil {
			return err
		}

		if err := provider.DeleteBlob(cmd.Context(), key); err != nil {
			return err
		}

		fmt.Println(okStyle.Render(fmt.Sprintf("Deleted %s", key)))
		return nil
	},
}
