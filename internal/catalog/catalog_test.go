package catalog_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"archiveboard/internal/catalog"
	"archiveboard/internal/dialect"
	"archiveboard/internal/fingerprint"
	"archiveboard/internal/queryimage"
	"archiveboard/internal/querytag"
)

func mustFingerprint(t *testing.T, hex string) fingerprint.Fingerprint {
	t.Helper()
	fp, err := fingerprint.Parse(hex)
	if err != nil {
		t.Fatalf("Parse(%q): %v", hex, err)
	}
	return fp
}

func openCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	cat, err := catalog.Open(context.Background(), "sqlite", dbPath, dialect.SQLite{})
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() { _ = cat.Close() })
	return cat
}

func TestEnsureImageIsIdempotent(t *testing.T) {
	cat := openCatalog(t)
	ctx := context.Background()
	fp := mustFingerprint(t, "329435e5e66be809")

	if err := cat.EnsureImage(ctx, fp); err != nil {
		t.Fatalf("EnsureImage: %v", err)
	}
	if err := cat.EnsureImage(ctx, fp); err != nil {
		t.Fatalf("second EnsureImage: %v", err)
	}

	exists, err := cat.ImageExists(ctx, fp)
	if err != nil {
		t.Fatalf("ImageExists: %v", err)
	}
	if !exists {
		t.Fatal("expected image to exist")
	}
}

func TestEnsureImageHasMetadataDefaultsCreatedAt(t *testing.T) {
	cat := openCatalog(t)
	ctx := context.Background()
	fp := mustFingerprint(t, "0000000000000001")

	meta := catalog.ImageMetadata{Width: 10, Height: 20, Format: "png", ColorModel: "rgba", FileSize: 1234}
	if err := cat.EnsureImageHasMetadata(ctx, fp, meta); err != nil {
		t.Fatalf("EnsureImageHasMetadata: %v", err)
	}

	got, err := cat.GetMetadata(ctx, fp)
	if err != nil {
		t.Fatalf("GetMetadata: %v", err)
	}
	if got == nil {
		t.Fatal("expected metadata row")
	}
	if got.CreatedAt == nil {
		t.Fatal("expected CreatedAt to be defaulted, got nil")
	}
	if got.Width != 10 || got.FileSize != 1234 {
		t.Fatalf("got %+v", got)
	}
}

func TestGetMetadataAbsentReturnsNil(t *testing.T) {
	cat := openCatalog(t)
	ctx := context.Background()
	fp := mustFingerprint(t, "0000000000000002")

	got, err := cat.GetMetadata(ctx, fp)
	if err != nil {
		t.Fatalf("GetMetadata: %v", err)
	}
	if got != nil {
		t.Fatalf("got %+v, want nil", got)
	}
}

func TestTagAttachmentAndRemoval(t *testing.T) {
	cat := openCatalog(t)
	ctx := context.Background()
	fp := mustFingerprint(t, "0000000000000003")

	if err := cat.EnsureImageHasTags(ctx, fp, []string{"cat", "cute"}); err != nil {
		t.Fatalf("EnsureImageHasTags: %v", err)
	}
	tags, err := cat.GetTags(ctx, fp)
	if err != nil {
		t.Fatalf("GetTags: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("tags = %v, want 2", tags)
	}

	if err := cat.EnsureTagsRemoved(ctx, fp, []string{"cute"}); err != nil {
		t.Fatalf("EnsureTagsRemoved: %v", err)
	}
	tags, err = cat.GetTags(ctx, fp)
	if err != nil {
		t.Fatalf("GetTags: %v", err)
	}
	if len(tags) != 1 || tags[0] != "cat" {
		t.Fatalf("tags = %v, want [cat]", tags)
	}
}

func TestEnsureImageRemovedIsIdempotent(t *testing.T) {
	cat := openCatalog(t)
	ctx := context.Background()
	fp := mustFingerprint(t, "0000000000000004")

	if err := cat.EnsureImageHasTags(ctx, fp, []string{"cat"}); err != nil {
		t.Fatalf("EnsureImageHasTags: %v", err)
	}
	if err := cat.EnsureImageRemoved(ctx, fp); err != nil {
		t.Fatalf("EnsureImageRemoved: %v", err)
	}
	if err := cat.EnsureImageRemoved(ctx, fp); err != nil {
		t.Fatalf("second EnsureImageRemoved: %v", err)
	}

	exists, err := cat.ImageExists(ctx, fp)
	if err != nil {
		t.Fatalf("ImageExists: %v", err)
	}
	if exists {
		t.Fatal("expected image to be gone")
	}
}

func TestQueryImageByTagAndDate(t *testing.T) {
	cat := openCatalog(t)
	ctx := context.Background()

	cat1 := mustFingerprint(t, "0000000000000005")
	cat2 := mustFingerprint(t, "0000000000000006")

	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := cat.EnsureImageHasMetadata(ctx, cat1, catalog.ImageMetadata{CreatedAt: &old}); err != nil {
		t.Fatalf("EnsureImageHasMetadata cat1: %v", err)
	}
	if err := cat.EnsureImageHasMetadata(ctx, cat2, catalog.ImageMetadata{CreatedAt: &recent}); err != nil {
		t.Fatalf("EnsureImageHasMetadata cat2: %v", err)
	}
	if err := cat.EnsureImageHasTags(ctx, cat1, []string{"cat"}); err != nil {
		t.Fatalf("EnsureImageHasTags cat1: %v", err)
	}
	if err := cat.EnsureImageHasTags(ctx, cat2, []string{"cat"}); err != nil {
		t.Fatalf("EnsureImageHasTags cat2: %v", err)
	}

	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	results, err := cat.QueryImage(ctx, queryimage.Query{
		Filter: queryimage.And{
			Left:  queryimage.Tag{Name: "cat"},
			Right: queryimage.DateSince{At: since},
		},
	})
	if err != nil {
		t.Fatalf("QueryImage: %v", err)
	}
	if len(results) != 1 || results[0] != cat2 {
		t.Fatalf("results = %v, want [%v]", results, cat2)
	}
}

func TestQueryTagsPrefix(t *testing.T) {
	cat := openCatalog(t)
	ctx := context.Background()

	if err := cat.EnsureTags(ctx, []string{"cat", "caterpillar", "dog"}); err != nil {
		t.Fatalf("EnsureTags: %v", err)
	}

	names, err := cat.QueryTags(ctx, querytag.Query{Filter: querytag.Prefix{Value: "cat"}})
	if err != nil {
		t.Fatalf("QueryTags: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("names = %v, want 2 entries", names)
	}
}

func TestRefreshImageCountAndLookup(t *testing.T) {
	cat := openCatalog(t)
	ctx := context.Background()
	fp := mustFingerprint(t, "0000000000000007")

	if err := cat.EnsureImageHasTags(ctx, fp, []string{"cat"}); err != nil {
		t.Fatalf("EnsureImageHasTags: %v", err)
	}
	if err := cat.RefreshImageCount(ctx); err != nil {
		t.Fatalf("RefreshImageCount: %v", err)
	}

	count, err := cat.CountImageByTag(ctx, "cat")
	if err != nil {
		t.Fatalf("CountImageByTag: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	missing, err := cat.CountImageByTag(ctx, "nonexistent")
	if err != nil {
		t.Fatalf("CountImageByTag: %v", err)
	}
	if missing != 0 {
		t.Fatalf("count = %d, want 0", missing)
	}
}
