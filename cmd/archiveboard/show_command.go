package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"archiveboard/internal/fingerprint"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <fingerprint>",
		Short: "Display an archived asset's metadata, tags, and source",
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

			asset, err := orch.Find(cmd.Context(), fp)
			if err != nil {
				return err
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
}
