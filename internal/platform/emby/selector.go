package emby

import "strings"

// SelectorAll is the wildcard selector granting every library.
const SelectorAll = "all"

// LibrarySelector describes which libraries migrated accounts receive.
// Exactly one of All, IDs, or neither (skip grants) applies.
type LibrarySelector struct {
	All bool
	IDs []string
}

// ParseSelector parses the config/flag form of a selector: "all", a
// comma-separated list of library IDs, or empty.
func ParseSelector(s string) LibrarySelector {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, SelectorAll) {
		return LibrarySelector{All: true}
	}
	if s == "" {
		return LibrarySelector{}
	}

	var ids []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}
	return LibrarySelector{IDs: ids}
}

// IsEmpty reports whether the selector skips library grants entirely.
func (s LibrarySelector) IsEmpty() bool {
	return !s.All && len(s.IDs) == 0
}

// Resolve maps the selector onto the catalog, returning the concrete
// library ID set every account will be granted. Matching is
// case-sensitive on IDs. A selector naming an unknown ID, or "all"
// against an empty catalog, fails with a ResolutionError.
func (s LibrarySelector) Resolve(catalog []Library) ([]string, error) {
	if s.All {
		if len(catalog) == 0 {
			return nil, &ResolutionError{Reason: "server reports no libraries"}
		}
		ids := make([]string, 0, len(catalog))
		for _, lib := range catalog {
			ids = append(ids, lib.ID)
		}
		return ids, nil
	}

	if len(s.IDs) == 0 {
		return nil, nil
	}

	known := make(map[string]bool, len(catalog))
	for _, lib := range catalog {
		known[lib.ID] = true
	}

	var missing []string
	for _, id := range s.IDs {
		if !known[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, &ResolutionError{Missing: missing}
	}

	return append([]string(nil), s.IDs...), nil
}
