package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"archiveboard/internal/mediastore"
)

func newArchiveCommand(ctx *commandContext) *cobra.Command {
	var tagsFlag string
	var sourceFlag string

	cmd := &cobra.Command{
		Use:   "archive <path>",
		Short: "Archive an image or video file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			orch, err := ctx.open(cmd.Context())
			if err != nil {
				return err
			}

			tags := strings.Fields(tagsFlag)
			var source *string
			if cmd.Flags().Changed("source") {
				source = &sourceFlag
			}

			asset, err := orch.Archive(cmd.Context(), data, tags, source)
			if err != nil {
				var collision *mediastore.HashCollision
				if errors.As(err, &collision) {
					return fmt.Errorf("archive %s: already archived at %s", args[0], collision.ExistingPath)
				}
				return fmt.Errorf("archive %s: %w", args[0], err)
			}

			if ctx.JSONMode() {
				return writeJSON(cmd, asset)
			}

			var out strings.Builder
			printAssetDetail(&out, asset)
			fmt.Fprint(cmd.OutOrStdout(), out.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&tagsFlag, "tags", "", "Space-separated tags to attach")
	cmd.Flags().StringVar(&sourceFlag, "source", "", "Source URL to record")
	return cmd
}
