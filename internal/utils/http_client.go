package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient("https://drive.example.com/api", 30*time.Second)
//	resp, err := client.R().Get("/core/v4/users")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient instance
// targeting baseURL. A zero timeout leaves requests bounded only by their
// context.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")

	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
