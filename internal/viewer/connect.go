package viewer

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"clipdeck/internal/composition"
	"clipdeck/internal/trace"
)

// SelectRequest captures everything the connect protocol needs, taken from
// the viewer at the moment the user chose a clip.
type SelectRequest struct {
	Layer  int
	Total  int
	ClipID int64
	Slot   int
}

// SelectResult is the outcome of running the connect protocol.
type SelectResult struct {
	SelectRequest
	// Steps is the full plan; Completed counts how many of them succeeded.
	Steps     Sequence
	Completed int
	Err       error
}

// PlanSelect builds a request to connect clipID at slot on the active layer.
func (v *Viewer) PlanSelect(clipID int64, slot int) SelectRequest {
	return SelectRequest{Layer: v.current, Total: v.total, ClipID: clipID, Slot: slot}
}

// PlanDisplayed builds a request for the n-th displayed clip (0-based).
func (v *Viewer) PlanDisplayed(n int) (SelectRequest, error) {
	for i, d := range v.Displayable() {
		if i == n {
			return v.PlanSelect(d.Clip.ID, d.Slot), nil
		}
	}
	return SelectRequest{}, ErrNoClip
}

// Steps returns the ordered connect calls for req: the fixed slot on every
// layer from 1 to req.Total, then the chosen clip.
func (v *Viewer) Steps(req SelectRequest) Sequence {
	var seq Sequence
	if v.opts.Fanout {
		for layer := 1; layer <= req.Total; layer++ {
			seq = append(seq, v.connectStep("fixed-slot", layer, v.opts.FixedSlot))
		}
	}
	return append(seq, v.connectStep("chosen-clip", req.Layer, req.Slot))
}

func (v *Viewer) connectStep(name string, layer, slot int) Step {
	return Step{
		Name:  name,
		Layer: layer,
		Slot:  slot,
		Run: func(ctx context.Context) error {
			return v.remote.Connect(ctx, layer, slot)
		},
	}
}

// Run executes the connect protocol for req without touching viewer state.
func (v *Viewer) Run(ctx context.Context, req SelectRequest) SelectResult {
	ctx, span := v.tracer.Start(ctx, "deck.select", oteltrace.WithAttributes(
		trace.AttrLayer.Int(req.Layer),
		trace.AttrSlot.Int(req.Slot),
		trace.AttrClipID.Int64(req.ClipID),
		trace.AttrLayers.Int(req.Total),
	))
	defer span.End()

	steps := v.Steps(req)
	completed, err := steps.Run(ctx)
	span.SetAttributes(trace.AttrStep.Int(completed))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return SelectResult{SelectRequest: req, Steps: steps, Completed: completed, Err: err}
}

// Commit records a successful connect and advances to the next layer.
// It returns the new active layer and whether anything changed.
func (v *Viewer) Commit(res SelectResult) (int, bool) {
	if res.Err != nil {
		v.logger.Error("failed to connect clip",
			zap.Int("layer", res.Layer),
			zap.Int("slot", res.Slot),
			zap.Int64("clip_id", res.ClipID),
			zap.Int("completed_steps", res.Completed),
			zap.Int("planned_steps", len(res.Steps)),
			zap.Error(res.Err),
		)
		return v.current, false
	}
	v.selection[res.Layer] = res.ClipID
	v.current = composition.NextLayer(res.Layer, res.Total)
	v.logger.Info("clip connected to composition",
		zap.Int("layer", res.Layer),
		zap.Int("slot", res.Slot),
		zap.Int64("clip_id", res.ClipID),
		zap.Int("next_layer", v.current),
	)
	return v.current, true
}

// Select runs the connect protocol for clipID at slot on the active layer and
// commits the result.
func (v *Viewer) Select(ctx context.Context, clipID int64, slot int) (SelectResult, error) {
	res := v.Run(ctx, v.PlanSelect(clipID, slot))
	v.Commit(res)
	return res, res.Err
}
