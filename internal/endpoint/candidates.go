package endpoint

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Candidates maps each operation to its priority-ordered list of base URLs.
// Order encodes preference: earlier entries are probed first and, once one
// is confirmed reachable, later ones are never tried again for the lifetime
// of the resolution cache.
type Candidates map[Operation][]string

// DefaultCandidates returns the built-in candidate lists for the platform.
// The split hosts exist because the platform migrated APIs between domains
// at some point and different regions still serve different generations.
func DefaultCandidates() Candidates {
	return Candidates{
		OpAuthorize: {
			"https://auth.playverse.com/v1/oauth/authorize",
			"https://www.playverse.com/oauth/authorize",
		},
		OpToken: {
			"https://auth.playverse.com/v1/oauth/token",
			"https://apis.playverse.com/oauth/v1/token",
		},
		OpUserInfo: {
			"https://auth.playverse.com/v1/oauth/userinfo",
			"https://apis.playverse.com/oauth/v1/userinfo",
		},
		OpGamesAPI: {
			"https://games.playverse.com",
			"https://apis.playverse.com/games",
		},
		OpUsersAPI: {
			"https://users.playverse.com",
			"https://apis.playverse.com/users",
		},
		OpThumbnailsAPI: {
			"https://thumbnails.playverse.com",
			"https://apis.playverse.com/thumbnails",
		},
	}
}

// LoadCandidates reads candidate lists from a YAML file. Operations absent
// from the file keep their built-in defaults.
//
// File shape:
//
//	token:
//	  - https://auth.playverse.com/v1/oauth/token
//	games-api:
//	  - https://games.playverse.com
func LoadCandidates(path string) (Candidates, error) {
	merged := DefaultCandidates()
	if path == "" {
		return merged, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read endpoints file: %w", err)
	}

	var file map[string][]string
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse endpoints yaml: %w", err)
	}

	for op, urls := range file {
		if len(urls) == 0 {
			continue
		}
		merged[Operation(op)] = urls
	}

	return merged, nil
}
