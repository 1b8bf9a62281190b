// Package scrape provides the scraping pipeline: URL discovery, concurrent
// fetching with retry and per-domain rate limiting, the extraction strategy
// chain, and assembly of the output collection.
package scrape

import (
	"net/url"
	"path"
	"strings"

	"github.com/aline-ai/kbscrape"
	"golang.org/x/net/publicsuffix"
)

// binaryExtensions are asset suffixes that never hold post content.
var binaryExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".svg":  true,
	".webp": true,
	".ico":  true,
	".css":  true,
	".js":   true,
	".pdf":  true,
	".zip":  true,
	".gz":   true,
	".mp3":  true,
	".mp4":  true,
	".xml":  true,
}

// NormalizeURL canonicalizes a raw URL: the scheme defaults to https, the
// fragment is stripped, and a trailing slash on a non-root path is removed.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", kbscrape.Errorf(kbscrape.EINVALID, "empty URL")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", kbscrape.Errorf(kbscrape.EINVALID, "invalid URL %q: %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", kbscrape.Errorf(kbscrape.EINVALID, "unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", kbscrape.Errorf(kbscrape.EINVALID, "URL %q has no host", raw)
	}

	u.Fragment = ""
	u.Host = strings.ToLower(u.Host)
	if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	return u.String(), nil
}

// Scope decides which discovered URLs belong to a scrape run. A URL is in
// scope when it shares the seed's registered domain (so www and bare-domain
// variants match) and, when the seed carries a non-root path, falls under
// that path prefix.
type Scope struct {
	seedHost   string
	seedDomain string // registered domain, e.g. example.co.uk
	pathPrefix string
}

// NewScope builds a Scope from a normalized seed URL.
func NewScope(seedURL string) (*Scope, error) {
	u, err := url.Parse(seedURL)
	if err != nil {
		return nil, kbscrape.Errorf(kbscrape.EINVALID, "invalid seed URL: %v", err)
	}

	s := &Scope{seedHost: u.Hostname()}

	// Registered domain so blog.example.com and example.com count as one
	// site. IP addresses and localhost fall back to exact host matching.
	if domain, err := publicsuffix.EffectiveTLDPlusOne(u.Hostname()); err == nil {
		s.seedDomain = domain
	}

	if u.Path != "" && u.Path != "/" {
		s.pathPrefix = u.Path
	}

	return s, nil
}

// Contains reports whether the URL belongs to the scrape scope.
func (s *Scope) Contains(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	if s.seedDomain != "" {
		domain, err := publicsuffix.EffectiveTLDPlusOne(host)
		if err != nil || domain != s.seedDomain {
			return false
		}
	} else if host != s.seedHost {
		return false
	}

	if s.pathPrefix != "" && !matchesPathPrefix(u.Path, s.pathPrefix) {
		return false
	}

	if binaryExtensions[strings.ToLower(path.Ext(u.Path))] {
		return false
	}

	return true
}

// Broadened returns a copy of the scope without the path prefix, used when
// discovery under the seed path finds too little.
func (s *Scope) Broadened() *Scope {
	return &Scope{seedHost: s.seedHost, seedDomain: s.seedDomain}
}

// PathPrefix returns the seed path restriction, or "" for root seeds.
func (s *Scope) PathPrefix() string {
	return s.pathPrefix
}

// matchesPathPrefix reports whether p falls under prefix at a path-segment
// boundary, so /blog does not match /blogroll.
func matchesPathPrefix(p, prefix string) bool {
	if p == prefix {
		return true
	}
	return strings.HasPrefix(p, strings.TrimSuffix(prefix, "/")+"/")
}
