package restcountries

import "context"

// Source defines the country-data fetch operation. The interface enables
// testability by allowing mock implementations.
type Source interface {
	FetchAll(ctx context.Context) ([]RawCountry, error)
}

// Ensure Client implements the interface
var _ Source = (*Client)(nil)
