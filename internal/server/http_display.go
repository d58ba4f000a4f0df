package server

import "fmt"

// displayServerInfo shows server configuration information
func (s *Server) displayServerInfo() {
	s.displayEndpoints()
	s.displayAuthInfo()
	s.displayRequestLimitInfo()
	s.displayRateLimitInfo()
}

// displayEndpoints shows available API endpoints
func (s *Server) displayEndpoints() {
	fmt.Println("Available endpoints:")
	fmt.Println("  GET  /health    - Health check")
	fmt.Println("  GET  /stats     - Server statistics")
	fmt.Println("  POST /login     - Obtain a session token")
	fmt.Println("  POST /logout    - Invalidate a session token")
	fmt.Println("  POST /analyze   - Analyze a job opportunity (requires API key or session)")
}

// displayAuthInfo shows authentication configuration
func (s *Server) displayAuthInfo() {
	switch {
	case len(s.APIKeys) > 0 && s.Auth != nil:
		fmt.Printf("Authentication: ENABLED (%d API keys, session login available)\n", len(s.APIKeys))
	case len(s.APIKeys) > 0:
		fmt.Printf("Authentication: ENABLED (%d API keys configured)\n", len(s.APIKeys))
	case s.Auth != nil:
		fmt.Println("Authentication: ENABLED (session login only)")
	default:
		fmt.Println("Authentication: DISABLED (no API keys or users configured)")
		fmt.Println("WARNING: API endpoints are publicly accessible!")
	}
}

// displayRequestLimitInfo shows request size limit configuration
func (s *Server) displayRequestLimitInfo() {
	if s.MaxRequestSize > 0 {
		fmt.Printf("Request size limit: %d bytes (%.1f MB)\n", s.MaxRequestSize, float64(s.MaxRequestSize)/(1024*1024))
	} else {
		fmt.Println("Request size limit: DISABLED")
		fmt.Println("WARNING: No request size limits configured!")
	}
}

// displayRateLimitInfo shows rate limiting configuration
func (s *Server) displayRateLimitInfo() {
	if s.RateLimit != nil && s.RateLimit.Enabled {
		fmt.Printf("Rate limiting: ENABLED (%d requests/min, burst: %d)\n",
			s.RateLimit.RequestsPerMin, s.RateLimit.BurstCapacity)
		if s.RateLimit.ByAPIKey {
			fmt.Println("  - Per API key rate limiting enabled")
		}
		if s.RateLimit.ByIP {
			fmt.Println("  - Per IP address rate limiting enabled")
		}
	} else {
		fmt.Println("Rate limiting: DISABLED")
		fmt.Println("WARNING: No rate limiting configured!")
	}
}
