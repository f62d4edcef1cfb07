package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"archiveboard/internal/fingerprint"
)

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <fingerprint>",
		Short: "Remove an asset from the media store and catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fp, err := fingerprint.Parse(args[0])
			if err != nil {
				return fmt.Errorf("parse fingerprint %q: %w", args[0], err)
			}

			orch, err := ctx.open(cmd.Context())
			if err != nil {
				return err
			}

			if err := orch.Remove(cmd.Context(), fp); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", fp.String())
			return nil
		},
	}
}
