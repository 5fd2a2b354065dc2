package common

import (
	"regexp"
	"strings"

	"github.com/dtnitsch/payscale-url-parser/models"
)

// markdownLinkPattern matches [text](url) pasted links.
var markdownLinkPattern = regexp.MustCompile(`^\[.*?\]\(([^\)\s]+)\)$`)

// SanitizeURL performs basic cleanup on URLs to handle common copy-paste issues.
// Parentheses and braces are kept: PayScale titles like
// Job=Engineer_(Software) end in them.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	// Example: "[click here](https://www.payscale.com/)" -> "https://www.payscale.com/"
	if matches := markdownLinkPattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}

	// Example: "https://www.payscale.com/research/US," -> "https://www.payscale.com/research/US"
	cleaned = strings.TrimRight(cleaned, ",;\"'>")

	// Example: "<https://www.payscale.com/>" -> "https://www.payscale.com/"
	cleaned = strings.TrimLeft(cleaned, "\"'<")

	return strings.TrimSpace(cleaned)
}

// SplitURLList splits a flag value into URLs, sanitizing each entry and
// dropping empty ones. A value with newlines is split on newlines only.
// Otherwise it is split on commas, and a piece that cannot start a URL is
// glued back onto the previous one: "Employer=Acme,_Inc" stays whole.
func SplitURLList(s string) []string {
	if s == "" {
		return nil
	}

	sep := ","
	if strings.Contains(s, "\n") {
		sep = "\n"
	}

	var entries []string
	for _, p := range strings.Split(s, sep) {
		if sep == "," && len(entries) > 0 && !startsURL(p) {
			entries[len(entries)-1] += "," + p
			continue
		}
		entries = append(entries, p)
	}

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if cleaned := SanitizeURL(e); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

func startsURL(p string) bool {
	p = strings.TrimLeft(strings.TrimSpace(p), "\"'<[")
	lower := strings.ToLower(p)
	return p == "" ||
		strings.HasPrefix(p, "/") ||
		strings.Contains(lower, "://") ||
		strings.HasPrefix(lower, "www.") ||
		strings.Contains(lower, models.SiteDomain)
}
