package domain

import "context"

// GenerateOptions tunes a single text generation call.
type GenerateOptions struct {
	Temperature float64
	TopP        float64
	TopK        int
	MaxTokens   int
	// JSON asks the model to answer with a JSON document only.
	JSON bool
}

// DefaultGenerateOptions mirrors the sampling settings used for content.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{Temperature: 1, TopP: 0.95, TopK: 40, MaxTokens: 8192}
}

// TextGenerator is the generative-language collaborator.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// VideoSearcher is the video-search collaborator.
type VideoSearcher interface {
	SearchVideos(ctx context.Context, query string, limit int) ([]Video, error)
}
