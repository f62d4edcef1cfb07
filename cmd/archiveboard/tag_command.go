package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"archiveboard/internal/fingerprint"
	"archiveboard/internal/querytag"
)

func newTagCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Inspect and attach tags",
	}
	cmd.AddCommand(newTagListCommand(ctx))
	cmd.AddCommand(newTagAttachCommand(ctx))
	cmd.AddCommand(newTagCountCommand(ctx))
	cmd.AddCommand(newTagRefreshCommand(ctx))
	return cmd
}

func newTagRefreshCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Recompute tag_counts from the current image_tags rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := ctx.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := orch.RefreshCount(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Tag counts refreshed")
			return nil
		},
	}
}

func newTagListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list [prefix]",
		Short: "List known tag names, optionally filtered by prefix",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := ctx.open(cmd.Context())
			if err != nil {
				return err
			}

			q := querytag.Query{}
			if len(args) == 1 {
				q.Filter = querytag.Prefix{Value: args[0]}
			}

			names, err := orch.QueryTags(cmd.Context(), q)
			if err != nil {
				return err
			}

			if ctx.JSONMode() {
				return writeJSON(cmd, names)
			}
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tags found")
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newTagAttachCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "attach <fingerprint> <tags>",
		Short: "Replace an asset's tag set with a comma-separated list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fp, err := fingerprint.Parse(args[0])
			if err != nil {
				return fmt.Errorf("parse fingerprint %q: %w", args[0], err)
			}

			var desired []string
			for _, tag := range strings.Split(args[1], ",") {
				if trimmed := strings.TrimSpace(tag); trimmed != "" {
					desired = append(desired, trimmed)
				}
			}

			orch, err := ctx.open(cmd.Context())
			if err != nil {
				return err
			}

			tags, err := orch.AttachTags(cmd.Context(), fp, desired)
			if err != nil {
				return err
			}

			if ctx.JSONMode() {
				return writeJSON(cmd, tags)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tags: %s\n", formatTags(tags))
			return nil
		},
	}
}

func newTagCountCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "count <tag>",
		Short: "Count images carrying a tag, from the refreshed tag_counts table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := ctx.open(cmd.Context())
			if err != nil {
				return err
			}

			count, err := orch.CountImageByTag(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if ctx.JSONMode() {
				return writeJSON(cmd, map[string]any{"tag": args[0], "count": count})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", count)
			return nil
		},
	}
}
