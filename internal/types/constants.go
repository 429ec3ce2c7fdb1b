package types

import (
	"os"
	"strings"
)

// ContextUserKey is where the auth middleware stores the resolved actor.
const ContextUserKey = "user"

// AllowedOrigins is the CORS allowlist: the local dev frontends plus
// whatever CLIENT_URL and ALLOWED_ORIGINS contribute.
var AllowedOrigins = corsOrigins()

func corsOrigins() []string {
	origins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	if clientURL := strings.TrimSpace(os.Getenv("CLIENT_URL")); clientURL != "" {
		origins = append(origins, clientURL)
	}

	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
