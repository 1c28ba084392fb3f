package trace

import "go.opentelemetry.io/otel/attribute"

// Attribute keys shared by the API client and the viewer.
const (
	AttrLayer  = attribute.Key("clipdeck.layer")
	AttrSlot   = attribute.Key("clipdeck.slot")
	AttrClipID = attribute.Key("clipdeck.clip.id")
	AttrLayers = attribute.Key("clipdeck.layers")
	AttrStep   = attribute.Key("clipdeck.step")
)
