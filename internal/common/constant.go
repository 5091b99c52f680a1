// Package common contains shared constants and sentinel errors used across
// dealerdesk components.
package common

const (
	// AuthHeaderName is the HTTP header used to carry the bearer credential
	// on outbound requests.
	AuthHeaderName = "Authorization"

	// BearerPrefix is the scheme prefix of the credential header value.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName tags each outbound request for log correlation.
	RequestIDHeaderName = "X-Request-ID"
)
