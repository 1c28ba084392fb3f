package apitest

import "clipdeck/internal/composition"

// Clip builds a named clip.
func Clip(id int64, name string) composition.Clip {
	return composition.Clip{ID: id, Name: composition.ClipName{Value: name}}
}

// Layers builds a composition from per-layer clip lists.
func Layers(layers ...[]composition.Clip) composition.Composition {
	c := composition.Composition{Layers: make([]composition.Layer, len(layers))}
	for i, clips := range layers {
		c.Layers[i] = composition.Layer{Clips: clips}
	}
	return c
}

// ThreeLayers is a small composition used across tests: three layers whose
// first slot is empty.
func ThreeLayers() composition.Composition {
	return Layers(
		[]composition.Clip{Clip(100, ""), Clip(101, "Intro"), Clip(102, "Loop")},
		[]composition.Clip{Clip(200, ""), Clip(201, "Strobe")},
		[]composition.Clip{Clip(300, ""), Clip(301, "Outro")},
	)
}
