package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"archiveboard/internal/fingerprint"
	"archiveboard/internal/orchestrator"
)

func formatKind(kind fingerprint.Kind) string {
	switch kind {
	case fingerprint.KindImage:
		return "image"
	case fingerprint.KindVideo:
		return "video"
	default:
		return "unknown"
	}
}

func formatCreatedAt(asset orchestrator.Asset) string {
	if asset.Metadata.CreatedAt == nil {
		return "-"
	}
	return asset.Metadata.CreatedAt.Format("2006-01-02 15:04:05")
}

func formatSource(asset orchestrator.Asset) string {
	if asset.Source == nil || strings.TrimSpace(*asset.Source) == "" {
		return "-"
	}
	return *asset.Source
}

func formatTags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, ", ")
}

func printAssetDetail(out *strings.Builder, asset orchestrator.Asset) {
	fmt.Fprintf(out, "Fingerprint: %s\n", asset.Fingerprint.String())
	fmt.Fprintf(out, "Kind:        %s\n", formatKind(asset.Path.Kind))
	fmt.Fprintf(out, "Path:        %s\n", asset.Path.Path)
	if asset.Path.ThumbnailPath != "" {
		fmt.Fprintf(out, "Thumbnail:   %s\n", asset.Path.ThumbnailPath)
	}
	fmt.Fprintf(out, "Dimensions:  %dx%d\n", asset.Metadata.Width, asset.Metadata.Height)
	fmt.Fprintf(out, "Format:      %s\n", asset.Metadata.Format)
	fmt.Fprintf(out, "Size:        %s\n", humanize.Bytes(uint64(asset.Metadata.FileSize)))
	if asset.Metadata.DurationSeconds != nil {
		fmt.Fprintf(out, "Duration:    %.1fs\n", *asset.Metadata.DurationSeconds)
	}
	fmt.Fprintf(out, "Created:     %s\n", formatCreatedAt(asset))
	fmt.Fprintf(out, "Source:      %s\n", formatSource(asset))
	fmt.Fprintf(out, "Tags:        %s\n", formatTags(asset.Tags))
}

func buildAssetRows(assets []orchestrator.Asset) [][]string {
	rows := make([][]string, 0, len(assets))
	for _, asset := range assets {
		rows = append(rows, []string{
			asset.Fingerprint.String(),
			formatKind(asset.Path.Kind),
			humanize.Bytes(uint64(asset.Metadata.FileSize)),
			formatTags(asset.Tags),
			formatCreatedAt(asset),
		})
	}
	return rows
}

func assetTableHeaders() []string {
	return []string{"Fingerprint", "Kind", "Size", "Tags", "Created"}
}

func assetTableAligns() []columnAlignment {
	return []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft}
}
