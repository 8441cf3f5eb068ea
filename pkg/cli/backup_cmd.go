package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"duck-demo/internal/backup"
)

func newBackupCmd() *cobra.Command {
	var localPath string

	cmd := &cobra.Command{
		Use:   "backup <s3://... | azblob://... | gs://...>",
		Short: "Upload a local file to object storage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := args[0]
			if localPath == "" {
				return fmt.Errorf("--file is required")
			}

			be, err := backup.ForURI(cmd.Context(), dest)
			if err != nil {
				return err
			}
			key, err := backup.KeyFromURI(dest)
			if err != nil {
				return err
			}
			if err := be.Upload(cmd.Context(), localPath, key); err != nil {
				return err
			}
			fmt.Printf("uploaded %s to %s\n", localPath, dest)
			return nil
		},
	}

	cmd.Flags().StringVar(&localPath, "file", "", "local file to upload (required)")
	return cmd
}
