package client

import "errors"

// Result is what every cart mutation produces. Presentation code renders
// feedback off it; store operations never return raw errors or panic.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

const (
	fallbackFetch   = "Failed to load cart"
	fallbackAdd     = "Failed to add to cart"
	fallbackUpdate  = "Failed to update cart"
	fallbackRemove  = "Failed to remove from cart"
	fallbackNetwork = "Network error"
)

func ok() Result {
	return Result{Success: true}
}

func failure(msg string) Result {
	return Result{Success: false, Error: msg}
}

// resultFromError turns an adapter error into the failure contract: the
// server's message verbatim when present, the operation fallback when the
// body had none, and the network fallback for everything else.
func resultFromError(err error, fallback string) Result {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return failure(apiErr.Message)
		}
		return failure(fallback)
	}
	return failure(fallbackNetwork)
}
