package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var StatCmd = &cobra.Command{
	Use:   "stat <key>",
	Short: "Check whether a blob exists",
	Long:  `Exits 0 when the key exists, 1 when it does not. Backend failures exit non-zero with an error.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]

		provider, err := newProvider(cmd.Context())
		if err != nil {
			return err
		}

		present, err := provider.IsBlobPresent(cmd.Context(), key)
		if err != nil {
			return err
		}
		if !present {
			fmt.Println(errStyle.Render(fmt.Sprintf("%s: absent", key)))
			os.Exit(1)
		}

		fmt.Println(okStyle.Render(fmt.Sprintf("%s: present", key)))
		return nil
	},
}
