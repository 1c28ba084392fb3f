package viewer

import (
	"context"
	"iter"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"clipdeck/internal/composition"
	"clipdeck/internal/trace"
)

// DefaultFixedSlot is the slot connected on every layer before the chosen clip.
const DefaultFixedSlot = 10

// Remote is the subset of the API client the viewer needs.
type Remote interface {
	Composition(ctx context.Context) (*composition.Composition, error)
	Connect(ctx context.Context, layer, slot int) error
}

// Options configures a Viewer.
type Options struct {
	// FixedSlot is connected on every layer before the chosen clip.
	FixedSlot int
	// Fanout enables the fixed-slot pass. When false only the chosen clip
	// is connected.
	Fanout    bool
	Overrides composition.Overrides
	Logger    *zap.Logger
	Tracer    oteltrace.Tracer
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{FixedSlot: DefaultFixedSlot, Fanout: true}
}

// Viewer is the state of one clip deck session.
type Viewer struct {
	remote Remote
	opts   Options
	logger *zap.Logger
	tracer oteltrace.Tracer

	current    int
	total      int
	clips      []composition.Clip
	loading    bool
	generation uint64
	selection  map[int]int64
}

// New creates a viewer positioned on layer 1.
func New(remote Remote, opts Options) *Viewer {
	if opts.FixedSlot < 1 {
		opts.FixedSlot = DefaultFixedSlot
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(trace.InstrumentationName)
	}
	return &Viewer{
		remote:    remote,
		opts:      opts,
		logger:    logger,
		tracer:    tracer,
		current:   1,
		selection: make(map[int]int64),
	}
}

// CurrentLayer returns the active 1-based layer.
func (v *Viewer) CurrentLayer() int { return v.current }

// TotalLayers returns the layer count seen in the last successful fetch.
func (v *Viewer) TotalLayers() int { return v.total }

// Loading reports whether a layer load is outstanding.
func (v *Viewer) Loading() bool { return v.loading }

// Clips returns the raw clip list of the active layer.
func (v *Viewer) Clips() []composition.Clip { return v.clips }

// Overrides returns the label table in use.
func (v *Viewer) Overrides() composition.Overrides { return v.opts.Overrides }

// Displayable returns the active layer's renderable clips.
func (v *Viewer) Displayable() iter.Seq2[int, composition.Display] {
	return composition.Displayable(v.clips, v.opts.Overrides)
}

// Selected returns the clip id last connected on layer.
func (v *Viewer) Selected(layer int) (int64, bool) {
	id, ok := v.selection[layer]
	return id, ok
}

// SetLayer moves to layer without connecting anything. The caller is
// expected to load it afterwards.
func (v *Viewer) SetLayer(layer int) {
	if layer < 1 {
		layer = 1
	}
	v.current = layer
}

// NextLayer returns the layer that follows the active one.
func (v *Viewer) NextLayer() int {
	return composition.NextLayer(v.current, v.total)
}
