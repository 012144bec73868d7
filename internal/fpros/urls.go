package fpros

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultBaseURL is the game-log root; a subject's page is <base>/<slug>.php.
const DefaultBaseURL = "https://www.fantasypros.com/nfl/games"

// PreferredScoring is the query value for the half-PPR variant of a game log.
const PreferredScoring = "HALF"

var reSlugStrip = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)

// Slug turns a display name into a URL path segment:
// "Amon-Ra St. Brown" -> "amon-ra-st-brown", "D'Andre Swift" -> "dandre-swift".
func Slug(name string) string {
	s := reSlugStrip.ReplaceAllString(strings.ToLower(name), "")
	return strings.Join(strings.Fields(s), "-")
}

// BaseGamesURL accepts either a full URL (query dropped) or a slug.
func BaseGamesURL(baseURL, identOrURL string) string {
	ident := strings.TrimSpace(identOrURL)
	if strings.HasPrefix(strings.ToLower(ident), "http") {
		return stripQuery(ident)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return fmt.Sprintf("%s/%s.php", strings.TrimRight(baseURL, "/"), ident)
}

// SeasonURL builds the season page URL; an empty scoring selects the site default.
func SeasonURL(base string, season int, scoring string) string {
	base = stripQuery(base)
	if scoring != "" {
		return fmt.Sprintf("%s?scoring=%s&season=%d", base, scoring, season)
	}
	return fmt.Sprintf("%s?season=%d", base, season)
}

func stripQuery(u string) string {
	if i := strings.IndexByte(u, '?'); i >= 0 {
		return u[:i]
	}
	return u
}
