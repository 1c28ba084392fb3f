package viewer

import (
	"context"
	"errors"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"clipdeck/internal/composition"
	"clipdeck/internal/trace"
)

// LoadRequest identifies one layer load. Generation orders loads so a late
// answer to an old request cannot replace a newer one.
type LoadRequest struct {
	Layer      int
	Generation uint64
}

// LoadResult is the outcome of fetching a layer.
type LoadResult struct {
	LoadRequest
	Total int
	Clips []composition.Clip
	Found bool
	Err   error
}

// BeginLoad marks a load of layer as outstanding and returns its request.
func (v *Viewer) BeginLoad(layer int) LoadRequest {
	v.generation++
	v.loading = true
	return LoadRequest{Layer: layer, Generation: v.generation}
}

// Fetch retrieves the composition and extracts the requested layer.
// It does not touch viewer state and is safe to call off the event loop.
func (v *Viewer) Fetch(ctx context.Context, req LoadRequest) LoadResult {
	res := LoadResult{LoadRequest: req}
	comp, err := v.remote.Composition(ctx)
	if err != nil {
		res.Err = err
		return res
	}
	res.Total = comp.LayerCount()
	if layer, ok := comp.Layer(req.Layer); ok {
		res.Found = true
		res.Clips = layer.Clips
	}
	return res
}

// Apply stores a fetched layer as the active render set. Results from a
// superseded request are dropped and Apply returns false.
func (v *Viewer) Apply(res LoadResult) bool {
	if res.Generation != v.generation {
		v.logger.Debug("dropping stale layer load",
			zap.Int("layer", res.Layer),
			zap.Uint64("generation", res.Generation),
			zap.Uint64("current_generation", v.generation),
		)
		return false
	}
	v.loading = false

	if res.Err != nil {
		v.clips = []composition.Clip{}
		v.logger.Error("failed to fetch composition", zap.Int("layer", res.Layer), zap.Error(res.Err))
		return true
	}

	v.total = res.Total
	if !res.Found {
		v.clips = []composition.Clip{}
		v.logger.Warn("layer not found", zap.Int("layer", res.Layer), zap.Int("layers", res.Total))
		return true
	}
	if res.Clips == nil {
		res.Clips = []composition.Clip{}
	}
	v.clips = res.Clips
	v.logger.Debug("layer loaded", zap.Int("layer", res.Layer), zap.Int("clips", len(res.Clips)))
	return true
}

// LoadLayer fetches the composition and makes layer's clips the active set.
// An out-of-range layer, including 0 and negatives, yields an empty list
// and no error; only fetch failures are returned.
func (v *Viewer) LoadLayer(ctx context.Context, layer int) ([]composition.Clip, error) {
	ctx, span := v.tracer.Start(ctx, "deck.load", oteltrace.WithAttributes(trace.AttrLayer.Int(layer)))
	defer span.End()

	v.current = layer
	res := v.Fetch(ctx, v.BeginLoad(layer))
	v.Apply(res)
	if res.Err != nil {
		span.RecordError(res.Err)
		return []composition.Clip{}, res.Err
	}
	return v.Clips(), nil
}

// ErrNoClip is returned when a selection refers to a clip the active layer
// does not display.
var ErrNoClip = errors.New("no such clip on the active layer")
