package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"archiveboard/internal/fingerprint"
)

func newSourceCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "source <fingerprint> <url>",
		Short: "Record an asset's source URL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fp, err := fingerprint.Parse(args[0])
			if err != nil {
				return fmt.Errorf("parse fingerprint %q: %w", args[0], err)
			}

			orch, err := ctx.open(cmd.Context())
			if err != nil {
				return err
			}

			if err := orch.AttachSource(cmd.Context(), fp, args[1]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Source set for %s\n", fp.String())
			return nil
		},
	}
}
