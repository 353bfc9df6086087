package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/DrSkyle/hold/pkg/blob"
)

var PutCmd = &cobra.Command{
	Use:   "put <key> <file>",
	Short: "Store a file under a key",
	Long:  `Streams the given file to the configured backend. Pass "-" as the file to read from stdin (the payload is then buffered to determine its size).`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, path := args[0], args[1]

		provider, err := newProvider(cmd.Context())
		if err != nil {
			return err
		}

		var b *blob.Blob
		if path == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			b = blob.FromBytes(key, data)
		} else {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			info, err := f.Stat()
			if err != nil {
				f.Close()
				return err
			}
			b = blob.New(key, info.Size(), f)
		}

		stored, err := provider.StoreBlob(cmd.Context(), b)
		if err != nil {
			return err
		}

		fmt.Println(okStyle.Render(fmt.Sprintf("Stored %s (%d bytes)", stored.Key(), stored.Size())))
		return nil
	},
}
