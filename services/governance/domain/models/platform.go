package models

import (
	"fmt"
	"strings"
)

// Platform is a social network that published content can be shared to.
type Platform string

const (
	PlatformTwitter   Platform = "TWITTER"
	PlatformFacebook  Platform = "FACEBOOK"
	PlatformInstagram Platform = "INSTAGRAM"
	PlatformLinkedIn  Platform = "LINKEDIN"
)

// ParsePlatforms normalizes and validates a list of platform names.
// All invalid names are reported together.
func ParsePlatforms(names []string) ([]Platform, error) {
	out := make([]Platform, 0, len(names))
	var invalid []string
	seen := make(map[Platform]bool, len(names))
	for _, n := range names {
		p := Platform(strings.ToUpper(strings.TrimSpace(n)))
		switch p {
		case PlatformTwitter, PlatformFacebook, PlatformInstagram, PlatformLinkedIn:
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		default:
			invalid = append(invalid, n)
		}
	}
	if len(invalid) > 0 {
		return nil, fmt.Errorf("invalid platforms: %s", strings.Join(invalid, ", "))
	}
	return out, nil
}
