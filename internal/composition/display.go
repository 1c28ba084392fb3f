package composition

import "iter"

// Overrides is the explicit label table. Position keys are 0-based indexes
// into a layer's clip list; id keys match Clip.ID.
type Overrides struct {
	ByPosition map[int]string
	ByID       map[int64]string
}

// Has reports whether a non-empty override exists for the clip at index.
func (o Overrides) Has(index int, c Clip) bool {
	return o.ByPosition[index] != "" || o.ByID[c.ID] != ""
}

// Label returns the button label for the clip at index: a position override
// first, then an id override, then the clip's own name.
func (o Overrides) Label(index int, c Clip) string {
	if l, ok := o.ByPosition[index]; ok && l != "" {
		return l
	}
	if l, ok := o.ByID[c.ID]; ok && l != "" {
		return l
	}
	return c.Name.Value
}

// Display is a clip that made it past filtering, ready to render.
type Display struct {
	Clip  Clip
	Label string
	// Slot is the clip's 1-based column in its layer.
	Slot int
}

// Displayable yields the clips that have either an override or a non-empty
// name, in layer order. The sequence is lazy and can be ranged over any
// number of times; the int key is the 0-based index among displayed clips.
func Displayable(clips []Clip, o Overrides) iter.Seq2[int, Display] {
	return func(yield func(int, Display) bool) {
		n := 0
		for i, c := range clips {
			if !c.HasName() && !o.Has(i, c) {
				continue
			}
			d := Display{Clip: c, Label: o.Label(i, c), Slot: i + 1}
			if !yield(n, d) {
				return
			}
			n++
		}
	}
}

// Collect drains a Displayable sequence into a slice.
func Collect(seq iter.Seq2[int, Display]) []Display {
	var out []Display
	for _, d := range seq {
		out = append(out, d)
	}
	return out
}
