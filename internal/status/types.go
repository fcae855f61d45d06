package status

import "time"

// Config configures the NC Ex-Gratia API client.
type Config struct {
	BaseURL  string
	Username string
	Password string
	// RequestsPerSec throttles outbound calls; the upstream API is shared
	// district infrastructure.
	RequestsPerSec float64
}

// Application is the status record returned by the API.
type Application struct {
	ReferenceNo string `json:"reference_no"`
	Status      string `json:"status"`
	Remarks     string `json:"remarks,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// tokenLifetime mirrors the upstream token expiry.
const tokenLifetime = 10 * time.Minute

// refreshMargin renews a token this long before it expires.
const refreshMargin = 2 * time.Minute
