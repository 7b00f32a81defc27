package providers

import (
	"context"
)

// Config represents one extraction request to an LLM vision provider
type Config struct {
	Model       string
	Temperature float64
	Prompt      string

	// ImageData and ImageFormat carry the page scan for vision-capable
	// providers. ImageFormat is the bare subtype, e.g. "jpeg" or "png".
	ImageData   []byte
	ImageFormat string
}

// Provider defines the interface for an LLM vision provider
type Provider interface {
	ExtractText(ctx context.Context, config Config) (string, error)
}
