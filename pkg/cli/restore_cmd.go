package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"duck-demo/internal/backup"
)

func newRestoreCmd() *cobra.Command {
	var localPath string

	cmd := &cobra.Command{
		Use:   "restore <s3://... | azblob://... | gs://...>",
		Short: "Download a file from object storage to a local path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			if localPath == "" {
				return fmt.Errorf("--file is required")
			}

			be, err := backup.ForURI(cmd.Context(), src)
			if err != nil {
				return err
			}
			key, err := backup.KeyFromURI(src)
			if err != nil {
				return err
			}
			if err := be.Download(cmd.Context(), key, localPath); err != nil {
				return err
			}
			fmt.Printf("downloaded %s to %s\n", src, localPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&localPath, "file", "", "local destination path (required)")
	return cmd
}
