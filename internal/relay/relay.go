package relay

import "net/url"

// Wrap routes a target URL through a cross-origin relay by appending the
// percent-encoded target to the relay base. An empty base means direct access.
func Wrap(base, target string) string {
	if base == "" {
		return target
	}
	return base + url.QueryEscape(target)
}
