package preview

import (
	"context"
	"fmt"
)

// fallbackFetcher wraps a primary fetcher with a fallback option.
type fallbackFetcher struct {
	primary  Fetcher
	fallback Fetcher
}

// WithFallback returns a fetcher that asks fallback when primary fails.
func WithFallback(primary, fallback Fetcher) Fetcher {
	return &fallbackFetcher{primary: primary, fallback: fallback}
}

// Fetch tries the primary fetcher first.
func (f *fallbackFetcher) Fetch(ctx context.Context, text, source, target string) (string, error) {
	out, err := f.primary.Fetch(ctx, text, source, target)
	if err == nil {
		return out, nil
	}
	if ctx.Err() != nil {
		return "", err
	}

	out, fallbackErr := f.fallback.Fetch(ctx, text, source, target)
	if fallbackErr != nil {
		return "", fmt.Errorf("both backends failed: %s=%v, %s=%v",
			f.primary.Name(), err, f.fallback.Name(), fallbackErr)
	}
	return out, nil
}

// Name returns the backend names.
func (f *fallbackFetcher) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", f.primary.Name(), f.fallback.Name())
}
