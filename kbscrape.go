// Package kbscrape provides a blog content scraper. It discovers post URLs
// from a seed site (sitemaps, feeds, on-page links), fetches each page,
// extracts the post content through a chain of fallback strategies, and
// serializes the results as JSON.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, trafilatura/, rod/).
package kbscrape
