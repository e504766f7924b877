package server

import "fmt"

var endpointHelp = [][3]string{
	{"GET", "/health", "Health check"},
	{"GET", "/stats", "Server statistics"},
	{"POST", "/score?strategy=", "Score a resume"},
	{"POST", "/validate", "Validate a resume"},
	{"POST", "/suggestions", "Checklist and ranked improvements"},
	{"POST", "/export?format=", "Download an export (template=, theme=)"},
	{"POST", "/resumes", "Store a resume"},
	{"GET", "/resumes/{id}", "Load a stored resume"},
	{"PUT", "/resumes/{id}", "Replace a stored resume"},
	{"DELETE", "/resumes/{id}", "Delete a stored resume"},
	{"GET", "/resumes/{id}/score", "Score a stored resume"},
}

// displayServerInfo prints endpoints and the active protections to s.Out.
func (s *Server) displayServerInfo() {
	fmt.Fprintln(s.Out, "Available endpoints:")
	for _, e := range endpointHelp {
		fmt.Fprintf(s.Out, "  %-6s %-20s - %s\n", e[0], e[1], e[2])
	}

	if n := s.apiKeyCount(); n > 0 {
		fmt.Fprintf(s.Out, "API authentication: ENABLED (%d keys; send X-API-Key or Authorization: Bearer)\n", n)
	} else {
		fmt.Fprintln(s.Out, "API authentication: DISABLED, resume endpoints are public")
	}
	if s.KeyWatcher != nil {
		fmt.Fprintln(s.Out, "API key rotation: watching Vault")
	}

	if s.MaxRequestSize > 0 {
		fmt.Fprintf(s.Out, "Request size limit: %d bytes\n", s.MaxRequestSize)
	} else {
		fmt.Fprintln(s.Out, "Request size limit: DISABLED")
	}

	rl := s.RateLimit
	switch {
	case rl == nil || !rl.Enabled:
		fmt.Fprintln(s.Out, "Rate limiting: DISABLED")
	default:
		fmt.Fprintf(s.Out, "Rate limiting: ENABLED (%d requests/min, burst %d, by_api_key=%t, by_ip=%t)\n",
			rl.RequestsPerMin, rl.BurstCapacity, rl.ByAPIKey, rl.ByIP)
	}
}
