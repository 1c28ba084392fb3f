package viewer_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"clipdeck/internal/api"
	"clipdeck/internal/api/apitest"
	"clipdeck/internal/composition"
	"clipdeck/internal/viewer"
)

type fixture struct {
	srv    *apitest.Server
	viewer *viewer.Viewer
	logs   *observer.ObservedLogs
}

func newFixture(t *testing.T, comp composition.Composition, opts viewer.Options) *fixture {
	t.Helper()
	srv := apitest.NewServer(comp)
	t.Cleanup(srv.Close)

	core, logs := observer.New(zapcore.DebugLevel)
	opts.Logger = zap.New(core)
	client := api.New(srv.BaseURL(), api.WithHTTPClient(srv.Client()))
	return &fixture{srv: srv, viewer: viewer.New(client, opts), logs: logs}
}

func TestLoadLayer_ReturnsRequestedLayer(t *testing.T) {
	comp := apitest.ThreeLayers()
	f := newFixture(t, comp, viewer.DefaultOptions())

	for k := 1; k <= 3; k++ {
		clips, err := f.viewer.LoadLayer(context.Background(), k)
		require.NoError(t, err)
		assert.Equal(t, comp.Layers[k-1].Clips, clips, "layer %d", k)
		assert.Equal(t, 3, f.viewer.TotalLayers())
		assert.False(t, f.viewer.Loading())
	}
}

func TestLoadLayer_OutOfRangeIsEmptyWithWarning(t *testing.T) {
	for _, layer := range []int{7, 4, 0, -1} {
		f := newFixture(t, apitest.ThreeLayers(), viewer.DefaultOptions())

		clips, err := f.viewer.LoadLayer(context.Background(), layer)
		require.NoError(t, err, "layer %d", layer)
		assert.Empty(t, clips, "layer %d", layer)
		assert.NotNil(t, clips, "layer %d", layer)
		assert.Equal(t, 3, f.viewer.TotalLayers())
		assert.Equal(t, layer, f.viewer.CurrentLayer())

		warnings := f.logs.FilterLevelExact(zapcore.WarnLevel).FilterMessage("layer not found")
		assert.Equal(t, 1, warnings.Len(), "layer %d", layer)
	}
}

func TestLoadLayer_FetchFailureClearsClips(t *testing.T) {
	f := newFixture(t, apitest.ThreeLayers(), viewer.DefaultOptions())

	_, err := f.viewer.LoadLayer(context.Background(), 1)
	require.NoError(t, err)
	require.NotEmpty(t, f.viewer.Clips())

	f.srv.FailComposition(http.StatusInternalServerError)
	clips, err := f.viewer.LoadLayer(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, api.IsStatus(err, http.StatusInternalServerError))
	assert.Empty(t, clips)
	assert.Empty(t, f.viewer.Clips())
	assert.False(t, f.viewer.Loading())
	assert.Equal(t, 1, f.logs.FilterMessage("failed to fetch composition").Len())

	// Only one GET per load attempt: no retry.
	assert.Len(t, f.srv.Calls(), 2)
}

func TestApply_DropsStaleResult(t *testing.T) {
	f := newFixture(t, apitest.ThreeLayers(), viewer.DefaultOptions())
	ctx := context.Background()

	older := f.viewer.BeginLoad(1)
	newer := f.viewer.BeginLoad(2)

	newRes := f.viewer.Fetch(ctx, newer)
	oldRes := f.viewer.Fetch(ctx, older)

	assert.True(t, f.viewer.Apply(newRes))
	assert.False(t, f.viewer.Apply(oldRes), "older generation must not overwrite")
	require.Len(t, f.viewer.Clips(), 2)
	assert.Equal(t, int64(201), f.viewer.Clips()[1].ID)
}

func TestSelect_FansOutFixedSlotThenChosenClip(t *testing.T) {
	f := newFixture(t, apitest.ThreeLayers(), viewer.DefaultOptions())
	ctx := context.Background()
	_, err := f.viewer.LoadLayer(ctx, 1)
	require.NoError(t, err)

	res, err := f.viewer.Select(ctx, 101, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Completed)

	want := []string{"POST 1/10", "POST 2/10", "POST 3/10", "POST 1/2"}
	var got []string
	for _, c := range f.srv.Connects() {
		got = append(got, c.String())
	}
	assert.Equal(t, want, got)

	id, ok := f.viewer.Selected(1)
	require.True(t, ok)
	assert.Equal(t, int64(101), id)
	assert.Equal(t, 2, f.viewer.CurrentLayer())
}

func TestSelect_FailureStopsSequenceWithoutStateChange(t *testing.T) {
	f := newFixture(t, apitest.ThreeLayers(), viewer.DefaultOptions())
	ctx := context.Background()
	_, err := f.viewer.LoadLayer(ctx, 1)
	require.NoError(t, err)

	f.srv.FailConnect(2, 10, http.StatusBadGateway)
	res, err := f.viewer.Select(ctx, 101, 2)
	require.Error(t, err)

	var stepErr *viewer.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, 1, stepErr.Index)
	assert.Equal(t, 2, stepErr.Step.Layer)
	assert.True(t, api.IsStatus(err, http.StatusBadGateway))
	assert.Equal(t, 1, res.Completed)
	assert.Len(t, res.Steps, 4)

	// Layer 1's fixed slot stays connected; nothing after layer 2 is sent.
	connects := f.srv.Connects()
	require.Len(t, connects, 2)
	assert.Equal(t, "POST 1/10", connects[0].String())
	assert.Equal(t, "POST 2/10", connects[1].String())

	_, ok := f.viewer.Selected(1)
	assert.False(t, ok)
	assert.Equal(t, 1, f.viewer.CurrentLayer())
	assert.Equal(t, 1, f.logs.FilterMessage("failed to connect clip").Len())
}

func TestSelect_ChosenClipFailureDoesNotAdvance(t *testing.T) {
	f := newFixture(t, apitest.ThreeLayers(), viewer.DefaultOptions())
	ctx := context.Background()
	_, err := f.viewer.LoadLayer(ctx, 1)
	require.NoError(t, err)

	f.srv.FailConnect(1, 2, http.StatusNotFound)
	res, err := f.viewer.Select(ctx, 101, 2)
	require.Error(t, err)
	assert.Equal(t, 3, res.Completed)
	assert.Equal(t, 1, f.viewer.CurrentLayer())
}

func TestSelect_WrapsToFirstLayer(t *testing.T) {
	f := newFixture(t, apitest.ThreeLayers(), viewer.DefaultOptions())
	ctx := context.Background()
	_, err := f.viewer.LoadLayer(ctx, 3)
	require.NoError(t, err)

	_, err = f.viewer.Select(ctx, 301, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, f.viewer.CurrentLayer())
}

func TestSelect_TwoLayersAdvancesToSecond(t *testing.T) {
	comp := apitest.Layers(
		[]composition.Clip{apitest.Clip(1, "a")},
		[]composition.Clip{apitest.Clip(2, "b")},
	)
	f := newFixture(t, comp, viewer.DefaultOptions())
	ctx := context.Background()
	_, err := f.viewer.LoadLayer(ctx, 1)
	require.NoError(t, err)

	_, err = f.viewer.Select(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, f.viewer.CurrentLayer())
}

func TestSelect_FanoutDisabled(t *testing.T) {
	opts := viewer.DefaultOptions()
	opts.Fanout = false
	f := newFixture(t, apitest.ThreeLayers(), opts)
	ctx := context.Background()
	_, err := f.viewer.LoadLayer(ctx, 2)
	require.NoError(t, err)

	_, err = f.viewer.Select(ctx, 201, 2)
	require.NoError(t, err)

	connects := f.srv.Connects()
	require.Len(t, connects, 1)
	assert.Equal(t, "POST 2/2", connects[0].String())
}

func TestSelect_SelectionOverwrittenPerLayer(t *testing.T) {
	comp := apitest.Layers(
		[]composition.Clip{apitest.Clip(1, "a"), apitest.Clip(2, "b")},
	)
	f := newFixture(t, comp, viewer.DefaultOptions())
	ctx := context.Background()
	_, err := f.viewer.LoadLayer(ctx, 1)
	require.NoError(t, err)

	_, err = f.viewer.Select(ctx, 1, 1)
	require.NoError(t, err)
	// A single layer wraps back onto itself.
	require.Equal(t, 1, f.viewer.CurrentLayer())

	id, _ := f.viewer.Selected(1)
	assert.Equal(t, int64(1), id)

	_, err = f.viewer.Select(ctx, 2, 2)
	require.NoError(t, err)
	id, _ = f.viewer.Selected(1)
	assert.Equal(t, int64(2), id)
}

func TestPlanDisplayed(t *testing.T) {
	f := newFixture(t, apitest.ThreeLayers(), viewer.DefaultOptions())
	_, err := f.viewer.LoadLayer(context.Background(), 1)
	require.NoError(t, err)

	req, err := f.viewer.PlanDisplayed(1)
	require.NoError(t, err)
	assert.Equal(t, viewer.SelectRequest{Layer: 1, Total: 3, ClipID: 102, Slot: 3}, req)

	_, err = f.viewer.PlanDisplayed(5)
	assert.ErrorIs(t, err, viewer.ErrNoClip)
}
