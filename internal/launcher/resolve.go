package launcher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

var (
	// ErrAmbiguousApp means several app ids match a query.
	ErrAmbiguousApp = errors.New("application is ambiguous")
	// ErrUnknownApp means no app id is close to a query.
	ErrUnknownApp = errors.New("no application matching")
)

// Resolve maps a user-typed application name onto a known app id.
// It tries an exact match, then a case-insensitive match on app id or item
// name, then a substring match, and finally the closest id by edit distance.
func (c *Controller) Resolve(query string) (string, error) {
	if query == "" {
		return "", fmt.Errorf("empty application name")
	}
	items := c.Snapshot()
	q := strings.ToLower(query)

	for _, it := range items {
		if it.AppID == query {
			return it.AppID, nil
		}
	}
	for _, it := range items {
		if strings.ToLower(it.AppID) == q || strings.ToLower(it.Name) == q {
			return it.AppID, nil
		}
	}

	var substr []string
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.AppID), q) {
			substr = append(substr, it.AppID)
		}
	}
	if len(substr) == 1 {
		return substr[0], nil
	}
	if len(substr) > 1 {
		return "", fmt.Errorf("%w: %q could be %s", ErrAmbiguousApp, query, strings.Join(substr, ", "))
	}

	best, bestDist := "", -1
	for _, it := range items {
		d := levenshtein.ComputeDistance(q, strings.ToLower(it.AppID))
		if bestDist < 0 || d < bestDist {
			best, bestDist = it.AppID, d
		}
	}
	if best != "" && bestDist <= maxTypoDistance(q) {
		return best, nil
	}
	if best != "" {
		return "", fmt.Errorf("%w %q (closest: %s)", ErrUnknownApp, query, best)
	}
	return "", fmt.Errorf("%w %q", ErrUnknownApp, query)
}

func maxTypoDistance(q string) int {
	if d := len(q) / 3; d > 2 {
		return d
	}
	return 2
}
