package orchestrator

import (
	"context"
	"errors"
	"log/slog"

	"archiveboard/internal/catalog"
	"archiveboard/internal/fingerprint"
	"archiveboard/internal/logging"
	"archiveboard/internal/mediastore"
)

// Asset is the assembled view of one archived item: its location, metadata,
// tags and optional source, as returned by Archive and Find.
type Asset struct {
	Fingerprint fingerprint.Fingerprint
	Path        mediastore.MediaPath
	Metadata    catalog.ImageMetadata
	Tags        []string
	Source      *string
}

// Orchestrator composes a media store and a catalog into the top-level
// archive workflows. It holds no state of its own beyond its collaborators.
type Orchestrator struct {
	store      *mediastore.Store
	catalog    *catalog.Catalog
	videoTools fingerprint.VideoTools
	logger     *slog.Logger
}

// New constructs an Orchestrator over an already-open store and catalog.
func New(store *mediastore.Store, cat *catalog.Catalog, videoTools fingerprint.VideoTools, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{
		store:      store,
		catalog:    cat,
		videoTools: videoTools,
		logger:     logging.Component(logger, "orchestrator"),
	}
}

// Archive fingerprints bytes, writes it into the media store, and records
// it (plus tags and an optional source) in the catalog. A collision against
// an asset already on disk is adopted rather than treated as a failure,
// provided the catalog has no record of it; a collision the catalog already
// knows about is propagated. A failure after the store write triggers
// Remove as compensation before the error is returned.
func (o *Orchestrator) Archive(ctx context.Context, data []byte, tags []string, source *string) (Asset, error) {
	asset, err := fingerprint.Compute(ctx, data, fingerprint.Options{VideoTools: o.videoTools})
	if err != nil {
		return Asset{}, err
	}
	fp := asset.Fingerprint
	logger := o.logger.With(logging.String("fingerprint", fp.String()))

	if err := o.store.Create(ctx, asset); err != nil {
		var collision *mediastore.HashCollision
		if !errors.As(err, &collision) {
			o.compensate(ctx, logger, fp, err)
			return Asset{}, err
		}
		exists, existsErr := o.catalog.ImageExists(ctx, fp)
		if existsErr != nil {
			return Asset{}, existsErr
		}
		if exists {
			return Asset{}, err
		}
		logger.Warn("adopting existing on-disk asset after collision")
	}

	meta, err := o.store.Metadata(ctx, fp, o.videoTools)
	if err != nil {
		o.compensate(ctx, logger, fp, err)
		return Asset{}, err
	}

	if err := o.catalog.EnsureImageHasMetadata(ctx, fp, toCatalogMetadata(meta)); err != nil {
		o.compensate(ctx, logger, fp, err)
		return Asset{}, err
	}
	if len(tags) > 0 {
		if _, err := o.AttachTags(ctx, fp, tags); err != nil {
			o.compensate(ctx, logger, fp, err)
			return Asset{}, err
		}
	}
	if source != nil {
		if err := o.AttachSource(ctx, fp, *source); err != nil {
			o.compensate(ctx, logger, fp, err)
			return Asset{}, err
		}
	}

	view, err := o.Find(ctx, fp)
	if err != nil {
		o.compensate(ctx, logger, fp, err)
		return Asset{}, err
	}
	logger.Info("archived asset", logging.Int("kind", int(view.Path.Kind)))
	return view, nil
}

func (o *Orchestrator) compensate(ctx context.Context, logger *slog.Logger, fp fingerprint.Fingerprint, cause error) {
	logger.Warn("archive failed after store write, compensating", logging.Error(cause))
	if err := o.Remove(ctx, fp); err != nil {
		logger.Error("compensating remove failed", logging.Error(err))
	}
}

// Remove deletes fp from both the media store and the catalog. Both steps
// are idempotent; the store is cleared first to free the disk artifact as
// soon as possible.
func (o *Orchestrator) Remove(ctx context.Context, fp fingerprint.Fingerprint) error {
	if err := o.store.Delete(fp); err != nil {
		return err
	}
	return o.catalog.EnsureImageRemoved(ctx, fp)
}

// Find assembles the current view of fp: its on-disk location (required),
// tags, metadata (zero value if none recorded) and source.
func (o *Orchestrator) Find(ctx context.Context, fp fingerprint.Fingerprint) (Asset, error) {
	path, err := o.store.Index(fp)
	if err != nil {
		return Asset{}, err
	}
	if path == nil {
		return Asset{}, &StorageNotFound{Fingerprint: fp.String()}
	}

	tags, err := o.catalog.GetTags(ctx, fp)
	if err != nil {
		return Asset{}, err
	}
	meta, err := o.catalog.GetMetadata(ctx, fp)
	if err != nil {
		return Asset{}, err
	}
	source, err := o.catalog.GetSource(ctx, fp)
	if err != nil {
		return Asset{}, err
	}

	view := Asset{
		Fingerprint: fp,
		Path:        *path,
		Tags:        tags,
		Source:      source,
	}
	if meta != nil {
		view.Metadata = *meta
	}
	return view, nil
}

// AttachTags reconciles fp's recorded tags to exactly desired, returning
// the resulting tag set. It fails with StorageNotFound if the asset isn't
// present in the media store.
func (o *Orchestrator) AttachTags(ctx context.Context, fp fingerprint.Fingerprint, desired []string) ([]string, error) {
	present, err := o.requireStored(fp)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, &StorageNotFound{Fingerprint: fp.String()}
	}

	current, err := o.catalog.GetTags(ctx, fp)
	if err != nil {
		return nil, err
	}

	toAdd, toRemove := diffTags(current, desired)
	if err := o.catalog.EnsureImageHasTags(ctx, fp, toAdd); err != nil {
		return nil, err
	}
	if err := o.catalog.EnsureTagsRemoved(ctx, fp, toRemove); err != nil {
		return nil, err
	}
	return desired, nil
}

// AttachSource verifies fp is stored, then records src as its source.
func (o *Orchestrator) AttachSource(ctx context.Context, fp fingerprint.Fingerprint, src string) error {
	present, err := o.requireStored(fp)
	if err != nil {
		return err
	}
	if !present {
		return &StorageNotFound{Fingerprint: fp.String()}
	}
	return o.catalog.EnsureImageHasSource(ctx, fp, src)
}

func (o *Orchestrator) requireStored(fp fingerprint.Fingerprint) (bool, error) {
	path, err := o.store.Index(fp)
	if err != nil {
		return false, err
	}
	return path != nil, nil
}

// diffTags returns the tags present in desired but absent from current
// (toAdd), and the tags present in current but absent from desired
// (toRemove).
func diffTags(current, desired []string) (toAdd, toRemove []string) {
	currentSet := make(map[string]struct{}, len(current))
	for _, t := range current {
		currentSet[t] = struct{}{}
	}
	desiredSet := make(map[string]struct{}, len(desired))
	for _, t := range desired {
		desiredSet[t] = struct{}{}
	}

	for _, t := range desired {
		if _, ok := currentSet[t]; !ok {
			toAdd = append(toAdd, t)
		}
	}
	for _, t := range current {
		if _, ok := desiredSet[t]; !ok {
			toRemove = append(toRemove, t)
		}
	}
	return toAdd, toRemove
}

func toCatalogMetadata(m mediastore.ImageMetadata) catalog.ImageMetadata {
	return catalog.ImageMetadata{
		Width:           m.Width,
		Height:          m.Height,
		Format:          m.Format,
		ColorModel:      m.ColorModel,
		FileSize:        m.FileSize,
		CreatedAt:       m.CreatedAt,
		DurationSeconds: m.DurationSeconds,
	}
}
