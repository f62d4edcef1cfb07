package orchestrator_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"archiveboard/internal/catalog"
	"archiveboard/internal/dialect"
	"archiveboard/internal/fingerprint"
	"archiveboard/internal/mediastore"
	"archiveboard/internal/orchestrator"
	"archiveboard/internal/queryimage"
)

func samplePNG(t *testing.T, fill color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode sample png: %v", err)
	}
	return buf.Bytes()
}

func newOrchestrator(t *testing.T) *orchestrator.Orchestrator {
	t.Helper()
	dir := t.TempDir()

	store, err := mediastore.Open(filepath.Join(dir, "media"))
	if err != nil {
		t.Fatalf("mediastore.Open: %v", err)
	}

	dbPath := filepath.Join(dir, "catalog.db")
	cat, err := catalog.Open(context.Background(), "sqlite", dbPath, dialect.SQLite{})
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() { _ = cat.Close() })

	return orchestrator.New(store, cat, fingerprint.VideoTools{}, nil)
}

func TestArchiveThenFind(t *testing.T) {
	o := newOrchestrator(t)
	ctx := context.Background()

	data := samplePNG(t, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	source := "https://example.test/a.png"

	view, err := o.Archive(ctx, data, []string{"cat", "cute"}, &source)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if view.Source == nil || *view.Source != source {
		t.Fatalf("source = %v, want %q", view.Source, source)
	}
	if len(view.Tags) != 2 {
		t.Fatalf("tags = %v, want 2 entries", view.Tags)
	}

	found, err := o.Find(ctx, view.Fingerprint)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if found.Fingerprint != view.Fingerprint {
		t.Fatalf("Find fingerprint mismatch: %v vs %v", found.Fingerprint, view.Fingerprint)
	}
}

func TestArchiveDuplicateBytesReportsCollision(t *testing.T) {
	o := newOrchestrator(t)
	ctx := context.Background()

	data := samplePNG(t, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	first, err := o.Archive(ctx, data, nil, nil)
	if err != nil {
		t.Fatalf("first Archive: %v", err)
	}
	_, err = o.Archive(ctx, data, nil, nil)
	var collision *mediastore.HashCollision
	if !errors.As(err, &collision) {
		t.Fatalf("second Archive: got %v, want *HashCollision", err)
	}
	if _, err := o.Find(ctx, first.Fingerprint); err != nil {
		t.Fatalf("Find after rejected re-archive: %v", err)
	}
}

func TestRemoveThenFindIsStorageNotFound(t *testing.T) {
	o := newOrchestrator(t)
	ctx := context.Background()

	data := samplePNG(t, color.RGBA{R: 5, G: 5, B: 5, A: 255})
	view, err := o.Archive(ctx, data, nil, nil)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}

	if err := o.Remove(ctx, view.Fingerprint); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := o.Remove(ctx, view.Fingerprint); err != nil {
		t.Fatalf("Remove should be idempotent, got: %v", err)
	}

	_, err = o.Find(ctx, view.Fingerprint)
	var notFound *orchestrator.StorageNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("got %v, want *StorageNotFound", err)
	}
}

func TestAttachTagsReconciles(t *testing.T) {
	o := newOrchestrator(t)
	ctx := context.Background()

	data := samplePNG(t, color.RGBA{R: 9, G: 8, B: 7, A: 255})
	view, err := o.Archive(ctx, data, []string{"a", "b"}, nil)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}

	got, err := o.AttachTags(ctx, view.Fingerprint, []string{"b", "c"})
	if err != nil {
		t.Fatalf("AttachTags: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 tags", got)
	}

	found, err := o.Find(ctx, view.Fingerprint)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	tagSet := map[string]bool{}
	for _, tag := range found.Tags {
		tagSet[tag] = true
	}
	if tagSet["a"] || !tagSet["b"] || !tagSet["c"] {
		t.Fatalf("unexpected reconciled tag set: %v", found.Tags)
	}
}

func TestQueryImageFiltersByTag(t *testing.T) {
	o := newOrchestrator(t)
	ctx := context.Background()

	cat, err := o.Archive(ctx, samplePNG(t, color.RGBA{R: 100, G: 0, B: 0, A: 255}), []string{"cat"}, nil)
	if err != nil {
		t.Fatalf("Archive cat: %v", err)
	}
	if _, err := o.Archive(ctx, samplePNG(t, color.RGBA{R: 0, G: 100, B: 0, A: 255}), []string{"dog"}, nil); err != nil {
		t.Fatalf("Archive dog: %v", err)
	}

	results, err := o.QueryImage(ctx, queryimage.Query{Filter: queryimage.Tag{Name: "cat"}})
	if err != nil {
		t.Fatalf("QueryImage: %v", err)
	}
	if len(results) != 1 || results[0].Fingerprint != cat.Fingerprint {
		t.Fatalf("got %v, want only the cat-tagged image", results)
	}
}

func TestArchiveCompensatesOnNonCollisionStoreFailure(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root ignores directory write permissions")
	}

	dir := t.TempDir()
	mediaDir := filepath.Join(dir, "media")
	store, err := mediastore.Open(mediaDir)
	if err != nil {
		t.Fatalf("mediastore.Open: %v", err)
	}

	dbPath := filepath.Join(dir, "catalog.db")
	cat, err := catalog.Open(context.Background(), "sqlite", dbPath, dialect.SQLite{})
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() { _ = cat.Close() })

	o := orchestrator.New(store, cat, fingerprint.VideoTools{}, nil)
	ctx := context.Background()

	data := samplePNG(t, color.RGBA{R: 60, G: 70, B: 80, A: 255})
	asset, err := fingerprint.Compute(ctx, data, fingerprint.Options{})
	if err != nil {
		t.Fatalf("fingerprint.Compute: %v", err)
	}

	a, b := asset.Fingerprint.Shard()
	shardDir := filepath.Join(mediaDir, a, b)
	if err := os.MkdirAll(shardDir, 0o755); err != nil {
		t.Fatalf("mkdir shard dir: %v", err)
	}
	if err := os.Chmod(shardDir, 0o555); err != nil {
		t.Fatalf("chmod shard dir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(shardDir, 0o755) })

	if _, err := o.Archive(ctx, data, nil, nil); err == nil {
		t.Fatal("expected Archive to fail on an unwritable shard directory")
	}

	if _, err := o.Find(ctx, asset.Fingerprint); err == nil {
		t.Fatal("expected Find to fail after a compensated Archive left no trace")
	} else {
		var notFound *orchestrator.StorageNotFound
		if !errors.As(err, &notFound) {
			t.Fatalf("got %v, want *StorageNotFound (no orphaned store or catalog state)", err)
		}
	}
}

func TestCountImageByTagRequiresRefresh(t *testing.T) {
	o := newOrchestrator(t)
	ctx := context.Background()

	if _, err := o.Archive(ctx, samplePNG(t, color.RGBA{R: 50, G: 50, B: 50, A: 255}), []string{"shared"}, nil); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	before, err := o.CountImageByTag(ctx, "shared")
	if err != nil {
		t.Fatalf("CountImageByTag: %v", err)
	}
	if before != 0 {
		t.Fatalf("expected 0 before refresh, got %d", before)
	}

	if err := o.RefreshCount(ctx); err != nil {
		t.Fatalf("RefreshCount: %v", err)
	}

	after, err := o.CountImageByTag(ctx, "shared")
	if err != nil {
		t.Fatalf("CountImageByTag: %v", err)
	}
	if after != 1 {
		t.Fatalf("expected 1 after refresh, got %d", after)
	}
}
