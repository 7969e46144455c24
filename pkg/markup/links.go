package markup

import (
	"fmt"

	slug "github.com/goliatone/go-slug"

	"docintro/pkg/utils"
)

// LinkFunc derives an anchor link from a heading's title text and the
// marker's id attribute. Implementations must be pure and deterministic;
// an empty result means the heading has no linkable anchor, which
// consumers of TOC entries must tolerate.
type LinkFunc func(title, id string) string

// Link policy names accepted in configuration.
const (
	LinkPolicyID   = "id"
	LinkPolicySlug = "slug"
	LinkPolicyNone = "none"
)

// IDLinks uses the marker's explicit id attribute and nothing else.
// Headings without an id get an empty link. This is the default policy.
func IDLinks(_ string, id string) string {
	return id
}

// SlugLinks prefers the explicit id and otherwise slugs the title text.
func SlugLinks(title, id string) string {
	if id != "" {
		return id
	}
	normalized, err := slug.Normalize(title)
	if err != nil {
		return ""
	}
	return normalized
}

// NoLinks disables anchors entirely.
func NoLinks(string, string) string {
	return ""
}

// LinkFuncForPolicy maps a configured policy name to its LinkFunc.
// An empty policy selects the default.
func LinkFuncForPolicy(policy string) (LinkFunc, error) {
	switch policy {
	case LinkPolicyID, "":
		return IDLinks, nil
	case LinkPolicySlug:
		return SlugLinks, nil
	case LinkPolicyNone:
		return NoLinks, nil
	default:
		return nil, fmt.Errorf("%w: unknown link policy '%s'", utils.ErrConfigValidation, policy)
	}
}
