package orchestrator

import (
	"context"
	"errors"
	"sync"

	"archiveboard/internal/fingerprint"
	"archiveboard/internal/queryimage"
	"archiveboard/internal/querytag"
)

// QueryImage runs q against the catalog, then fans out one Find per
// matching fingerprint. Views are returned in the fingerprint order the
// catalog produced; a fingerprint whose Find reports StorageNotFound is
// dropped rather than failing the whole query (the catalog and the media
// store offer no cross-store atomicity, so a row briefly outliving its
// on-disk asset is expected). Any other error cancels the remaining
// in-flight lookups and is returned to the caller.
func (o *Orchestrator) QueryImage(ctx context.Context, q queryimage.Query) ([]Asset, error) {
	fps, err := o.catalog.QueryImage(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(fps) == 0 {
		return nil, nil
	}

	views := make([]Asset, len(fps))
	found := make([]bool, len(fps))

	fanCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	wg.Add(len(fps))
	for i, fp := range fps {
		go func(i int, fp fingerprint.Fingerprint) {
			defer wg.Done()
			view, err := o.Find(fanCtx, fp)
			if err != nil {
				var notFound *StorageNotFound
				if errors.As(err, &notFound) {
					return
				}
				mu.Lock()
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				mu.Unlock()
				return
			}
			views[i] = view
			found[i] = true
		}(i, fp)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	ordered := make([]Asset, 0, len(fps))
	for i, ok := range found {
		if ok {
			ordered = append(ordered, views[i])
		}
	}
	return ordered, nil
}

// CountImage delegates directly to the catalog.
func (o *Orchestrator) CountImage(ctx context.Context, q queryimage.Query) (uint64, error) {
	return o.catalog.CountImage(ctx, q)
}

// CountImageByTag delegates directly to the catalog.
func (o *Orchestrator) CountImageByTag(ctx context.Context, tag string) (uint64, error) {
	return o.catalog.CountImageByTag(ctx, tag)
}

// RefreshCount delegates directly to the catalog.
func (o *Orchestrator) RefreshCount(ctx context.Context) error {
	return o.catalog.RefreshImageCount(ctx)
}

// QueryTags delegates directly to the catalog.
func (o *Orchestrator) QueryTags(ctx context.Context, q querytag.Query) ([]string, error) {
	return o.catalog.QueryTags(ctx, q)
}
