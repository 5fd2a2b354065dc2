// Package classifier assigns payscale.com URLs to a section and category and
// extracts the typed fields encoded in their paths.
package classifier

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/dtnitsch/payscale-url-parser/models"
)

// rule matches a split path and fills in the classification when it applies.
// Rules never see an empty input URL.
type rule struct {
	name  string
	apply func(segments []string, out *models.ClassifiedURL) bool
}

// Classifier holds the ordered rule table. It is immutable after New and
// safe for concurrent use.
type Classifier struct {
	rules []rule
}

// New builds a classifier with the fixed rule table.
// Order is precedence: the first rule that applies wins.
func New() *Classifier {
	return &Classifier{
		rules: []rule{
			{name: "homepage", apply: matchHomepage},
			{name: "cost_of_living", apply: matchCostOfLiving},
			{name: "research", apply: matchResearch},
		},
	}
}

var defaultClassifier = New()

// Classify classifies rawURL with the package-level classifier.
func Classify(rawURL string) models.ClassifiedURL {
	return defaultClassifier.Classify(rawURL)
}

// Classify returns exactly one classification for rawURL. It never fails:
// anything no rule understands becomes other/other with no fields.
func (c *Classifier) Classify(rawURL string) models.ClassifiedURL {
	host, path, ok := splitURL(rawURL)
	if !ok {
		return models.Unclassified(rawURL)
	}
	segments := splitSegments(path)

	for _, r := range c.rules {
		result := located(rawURL, host, path)
		if r.apply(segments, &result) {
			return result
		}
	}
	return located(rawURL, host, path)
}

// splitURL strips scheme, query and fragment from rawURL, returns the host
// (empty for path-only input) and percent-decodes the path. Inputs without
// a scheme are accepted, both host-first ("www.payscale.com/research/US")
// and path-only ("/research/US"). ok is false for blank input and for a
// scheme with no host.
func splitURL(rawURL string) (host, path string, ok bool) {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return "", "", false
	}

	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}

	switch {
	case hasScheme(s):
		_, rest, _ := strings.Cut(s, "://")
		if host, s, ok = stripHost(rest); !ok {
			return "", "", false
		}
	case strings.HasPrefix(s, "//"):
		if host, s, ok = stripHost(s[2:]); !ok {
			return "", "", false
		}
	case s == "":
		return "", "", false
	case !strings.HasPrefix(s, "/"):
		first, _, _ := strings.Cut(s, "/")
		if looksLikeHost(first) {
			host, s, _ = stripHost(s)
		} else {
			s = "/" + s
		}
	}

	// Invalid escapes keep the literal text rather than failing the row.
	if decoded, err := url.PathUnescape(s); err == nil {
		s = decoded
	}
	return host, s, true
}

// stripHost splits off the host in front of the first slash. A bare host
// yields "/"; a missing host is reported with ok false.
func stripHost(s string) (host, path string, ok bool) {
	host, rest, found := strings.Cut(s, "/")
	if host == "" {
		return "", "", false
	}
	if !found {
		return host, "/", true
	}
	return host, "/" + rest, true
}

func located(rawURL, host, path string) models.ClassifiedURL {
	result := models.Unclassified(rawURL)
	result.Domain = host
	result.FullPath = path
	return result
}

// hasScheme reports a "scheme://" prefix. A "://" after the first slash
// belongs to the path, e.g. a redirect target.
func hasScheme(s string) bool {
	i := strings.Index(s, "://")
	return i >= 0 && !strings.Contains(s[:i], "/")
}

// hostTLDs are the last labels accepted for a scheme-less host that is
// not the site itself. File names such as "about.html" must stay paths.
var hostTLDs = map[string]bool{
	"com": true, "net": true, "org": true, "edu": true, "gov": true,
	"io": true, "co": true, "us": true, "uk": true, "ca": true,
	"au": true, "de": true, "fr": true, "in": true, "info": true,
}

func looksLikeHost(s string) bool {
	if s == "" {
		return false
	}
	host := strings.ToLower(s)
	if h, port, found := strings.Cut(host, ":"); found {
		if _, err := strconv.Atoi(port); err != nil {
			return false
		}
		host = h
	}
	if host == "localhost" {
		return true
	}
	// Path segments like "Job=Software_Engineer" can contain dots too, but
	// never an '=' in a hostname.
	if !strings.Contains(host, ".") || strings.ContainsAny(host, "=%") {
		return false
	}
	if strings.Contains(host, models.SiteDomain) || isIPv4(host) {
		return true
	}
	labels := strings.Split(host, ".")
	for _, l := range labels {
		if l == "" {
			return false
		}
	}
	return hostTLDs[labels[len(labels)-1]]
}

func isIPv4(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 255 {
			return false
		}
	}
	return true
}

// splitSegments splits a path on '/', dropping empty segments so that
// trailing and doubled slashes do not matter.
func splitSegments(path string) []string {
	parts := strings.Split(path, "/")
	segments := parts[:0]
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// humanize turns a raw path value into display text.
func humanize(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}
