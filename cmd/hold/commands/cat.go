package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var CatCmd = &cobra.Command{
	Use:   "cat <key>",
	Short: "Stream a blob to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]

		provider, err := newProvider(cmd.Context())
		if err != nil {
			return err
		}

		b, err := provider.GetBlob(cmd.Context(), key)
		if err != nil {
			return err
		}
		if b == nil {
			fmt.Fprintln(os.Stderr, errStyle.Render(fmt.Sprintf("Blob %s not found", key)))
			os.Exit(1)
		}

		content := b.Content()
		defer content.Close()

		_, err = io.Copy(os.Stdout, content)
		return err
	},
}
