package discovery

import "errors"

// Sentinel errors for discovery calls. Every failure is also a PROVIDER domain error.
var (
	ErrNoAPIKey         = errors.New("discovery: API key not configured")
	ErrBlankQuery       = errors.New("discovery: blank query")
	ErrRateLimited      = errors.New("discovery: rate limited by provider")
	ErrUnauthorized     = errors.New("discovery: provider rejected credentials")
	ErrServer           = errors.New("discovery: provider server error")
	ErrMalformed        = errors.New("discovery: malformed provider response")
	ErrTimeout          = errors.New("discovery: provider timed out")
	ErrNoCandidates     = errors.New("discovery: provider returned no candidates")
	ErrUnexpectedStatus = errors.New("discovery: unexpected provider status")
)
