package api

import (
	"time"
)

// ClientConfig represents the pharmacy API connection settings
type ClientConfig struct {
	// BaseURL is the API root, e.g. http://localhost:8080/api
	BaseURL string            `json:"base_url"`
	Headers map[string]string `json:"headers,omitempty"`

	// Authentication
	AuthMethod string `json:"auth_method"` // "none", "bearer", "api_key", "basic"
	AuthToken  string `json:"auth_token,omitempty"`
	Username   string `json:"username,omitempty"`
	Password   string `json:"password,omitempty"`

	Timeout   time.Duration `json:"timeout"`
	RateLimit int           `json:"rate_limit"` // Requests per minute, 0 disables
}

// ResponseMetadata contains information about one API fetch
type ResponseMetadata struct {
	URL          string        `json:"url"`
	StatusCode   int           `json:"status_code"`
	ResponseTime time.Duration `json:"response_time"`
	FetchedAt    time.Time     `json:"fetched_at"`
	ContentType  string        `json:"content_type"`
}
