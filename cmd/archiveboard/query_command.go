package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"archiveboard/internal/queryimage"
	"archiveboard/internal/queryparser"
)

var queryOrderNames = map[string]queryimage.Order{
	"created_desc": queryimage.OrderCreatedAtDesc,
	"created_asc":  queryimage.OrderCreatedAtAsc,
	"size_asc":     queryimage.OrderFileSizeAsc,
	"size_desc":    queryimage.OrderFileSizeDesc,
	"random":       queryimage.OrderRandom,
}

func newQueryCommand(ctx *commandContext) *cobra.Command {
	var limit uint32
	var offset uint32
	var orderFlag string
	var countOnly bool

	cmd := &cobra.Command{
		Use:   "query <expr>",
		Short: "Query archived images by tag and date expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := queryparser.Parse(args[0])
			if err != nil {
				return fmt.Errorf("parse query %q: %w", args[0], err)
			}

			order, ok := queryOrderNames[strings.ToLower(strings.TrimSpace(orderFlag))]
			if !ok {
				return fmt.Errorf("unknown --order value %q", orderFlag)
			}

			q := queryimage.Query{Filter: filter, Order: order}
			if cmd.Flags().Changed("limit") {
				q = q.WithLimit(limit)
			}
			if cmd.Flags().Changed("offset") {
				q = q.WithOffset(offset)
			}

			orch, err := ctx.open(cmd.Context())
			if err != nil {
				return err
			}

			if countOnly {
				count, err := orch.CountImage(cmd.Context(), q)
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, map[string]any{"count": count})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\n", count)
				return nil
			}

			assets, err := orch.QueryImage(cmd.Context(), q)
			if err != nil {
				return err
			}

			if ctx.JSONMode() {
				return writeJSON(cmd, assets)
			}

			if len(assets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matching assets")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(assetTableHeaders(), buildAssetRows(assets), assetTableAligns()))
			return nil
		},
	}

	cmd.Flags().Uint32Var(&limit, "limit", 0, "Maximum number of results")
	cmd.Flags().Uint32Var(&offset, "offset", 0, "Number of results to skip")
	cmd.Flags().StringVar(&orderFlag, "order", "created_desc", "Result order: created_desc, created_asc, size_asc, size_desc, random")
	cmd.Flags().BoolVar(&countOnly, "count", false, "Print only the number of matching assets")
	return cmd
}
