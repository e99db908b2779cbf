package deps

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SupportedNode reports whether raw (typically the trimmed output of
// `node --version`, with or without the leading v) satisfies the
// inclusive constraint range.
func SupportedNode(constraint, raw string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing node constraint %q: %w", constraint, err)
	}
	v, err := parseNodeVersion(raw)
	if err != nil {
		return false, err
	}
	return c.Check(v), nil
}

// parseNodeVersion extracts a semver value from version-flag output
// like "v20.11.1".
func parseNodeVersion(raw string) (*semver.Version, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "v")
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("parsing node version %q: %w", raw, err)
	}
	return v, nil
}
