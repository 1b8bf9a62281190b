package kbscrape

// LinkPriority represents crawl priority (higher = more important).
type LinkPriority int

// Link priority levels for crawl ordering.
const (
	PriorityIgnore     LinkPriority = 0
	PriorityFallback   LinkPriority = 10
	PriorityContent    LinkPriority = 50
	PriorityPagination LinkPriority = 80
	PriorityBlogPath   LinkPriority = 100
)

// DiscoveredLink represents a URL with priority metadata.
type DiscoveredLink struct {
	URL      string
	Priority LinkPriority
	Text     string
	Source   string // "blog-path", "pagination", "content", "fallback"
}

// Platform identifies a blog publishing platform.
type Platform string

// Recognized blog platforms.
const (
	PlatformUnknown   Platform = ""
	PlatformSubstack  Platform = "substack"
	PlatformNextJS    Platform = "nextjs"
	PlatformMedium    Platform = "medium"
	PlatformGhost     Platform = "ghost"
	PlatformWordPress Platform = "wordpress"
	PlatformHugo      Platform = "hugo"
	PlatformJekyll    Platform = "jekyll"
)

// LinkSelector extracts prioritized links from HTML.
type LinkSelector interface {
	// ExtractLinks parses HTML and returns discovered links with priority.
	// The baseURL is used to resolve relative URLs.
	ExtractLinks(html string, baseURL string) ([]DiscoveredLink, error)

	// Name returns the selector's identifier (e.g., "article").
	Name() string
}

// PlatformDetector identifies blog platforms from HTML.
type PlatformDetector interface {
	// Detect analyzes HTML and returns the identified platform.
	// Returns PlatformUnknown if the platform cannot be determined.
	Detect(html string) Platform
}

// ArticleClassifier judges whether a fetched page looks like an article.
// Used during on-page discovery to decide whether a page outside the
// blog-hint paths is worth collecting.
type ArticleClassifier interface {
	LooksLikeArticle(html string) bool
}
