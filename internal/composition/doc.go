// Package composition models the composition document served by the arena
// API: ordered layers, each holding an ordered list of clips.
//
// Layers are addressed by 1-based position, matching the remote API. Clips
// are addressed by slot, also 1-based, which is their column in the layer.
package composition
