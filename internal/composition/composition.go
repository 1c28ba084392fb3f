package composition

// ClipName is the wrapped name parameter the API returns for a clip.
type ClipName struct {
	Value string `json:"value"`
}

// Clip is a single clip slot in a layer. Empty slots come back with an id
// but no name.
type Clip struct {
	ID   int64    `json:"id"`
	Name ClipName `json:"name"`
}

// HasName reports whether the clip carries a non-empty display name.
func (c Clip) HasName() bool {
	return c.Name.Value != ""
}

// Layer is an ordered row of clips.
type Layer struct {
	Clips []Clip `json:"clips"`
}

// Composition is the full document returned by GET /composition.
type Composition struct {
	Layers []Layer `json:"layers"`
}

// LayerCount returns the number of layers in the composition.
func (c *Composition) LayerCount() int {
	if c == nil {
		return 0
	}
	return len(c.Layers)
}

// Layer returns the layer at the 1-based position pos.
// The second result is false when pos is out of range.
func (c *Composition) Layer(pos int) (Layer, bool) {
	if c == nil || pos < 1 || pos > len(c.Layers) {
		return Layer{}, false
	}
	return c.Layers[pos-1], true
}

// NextLayer returns the layer that follows current, wrapping from total back
// to 1. A non-positive total always yields 1.
func NextLayer(current, total int) int {
	if total <= 0 {
		return 1
	}
	return (current % total) + 1
}
