package composition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func named(id int64, name string) Clip {
	return Clip{ID: id, Name: ClipName{Value: name}}
}

func TestComposition_Layer(t *testing.T) {
	c := &Composition{Layers: []Layer{
		{Clips: []Clip{named(1, "a")}},
		{Clips: []Clip{named(2, "b"), named(3, "c")}},
	}}

	l, ok := c.Layer(2)
	require.True(t, ok)
	assert.Equal(t, []Clip{named(2, "b"), named(3, "c")}, l.Clips)

	for _, pos := range []int{0, -1, 3} {
		_, ok := c.Layer(pos)
		assert.False(t, ok, "layer %d should be out of range", pos)
	}

	var nilComp *Composition
	_, ok = nilComp.Layer(1)
	assert.False(t, ok)
	assert.Equal(t, 0, nilComp.LayerCount())
}

func TestNextLayer(t *testing.T) {
	tests := []struct {
		current, total, want int
	}{
		{1, 2, 2},
		{2, 2, 1},
		{3, 3, 1},
		{1, 3, 2},
		{1, 1, 1},
		{4, 0, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NextLayer(tt.current, tt.total), "NextLayer(%d, %d)", tt.current, tt.total)
	}
}

func TestDisplayable_SkipsUnnamed(t *testing.T) {
	clips := []Clip{named(1, ""), named(2, "Intro")}

	got := Collect(Displayable(clips, Overrides{}))
	require.Len(t, got, 1)
	assert.Equal(t, "Intro", got[0].Label)
	assert.Equal(t, int64(2), got[0].Clip.ID)
	assert.Equal(t, 2, got[0].Slot)
}

func TestDisplayable_OverrideBeatsName(t *testing.T) {
	clips := []Clip{named(7, "Raw")}
	o := Overrides{ByPosition: map[int]string{0: "Clip A"}}

	got := Collect(Displayable(clips, o))
	require.Len(t, got, 1)
	assert.Equal(t, "Clip A", got[0].Label)
}

func TestDisplayable_IDOverrideKeepsUnnamedClip(t *testing.T) {
	clips := []Clip{named(40, ""), named(41, "")}
	o := Overrides{ByID: map[int64]string{41: "Outro"}}

	got := Collect(Displayable(clips, o))
	require.Len(t, got, 1)
	assert.Equal(t, "Outro", got[0].Label)
	assert.Equal(t, 2, got[0].Slot)
}

func TestDisplayable_EmptyOverrideDoesNotKeepUnnamedClip(t *testing.T) {
	clips := []Clip{named(1, ""), named(2, "Intro")}
	o := Overrides{
		ByPosition: map[int]string{0: ""},
		ByID:       map[int64]string{1: ""},
	}

	got := Collect(Displayable(clips, o))
	require.Len(t, got, 1)
	assert.Equal(t, "Intro", got[0].Label)
	assert.False(t, o.Has(0, clips[0]))
}

func TestDisplayable_Restartable(t *testing.T) {
	seq := Displayable([]Clip{named(1, "a"), named(2, "b")}, Overrides{})

	first := Collect(seq)
	second := Collect(seq)
	assert.Equal(t, first, second)

	// Early break must not disturb later iterations.
	for range seq {
		break
	}
	assert.Len(t, Collect(seq), 2)
}
