package interfaces

import "context"

// -----------------------------------------------------------------------------
// INetworkManager defines the contract for fetching remote input tables.
// -----------------------------------------------------------------------------

type INetworkManager interface {

	// -----------------------------------------------------------------------------

	// Get performs a GET request to the specified URL.
	// Returns the response body as bytes or an error.
	Get(ctx context.Context, url string) ([]byte, error)
}
