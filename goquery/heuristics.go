package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aline-ai/kbscrape"
)

// Ensure Classifier implements kbscrape.ArticleClassifier at compile time.
var _ kbscrape.ArticleClassifier = (*Classifier)(nil)

// minArticleWords is the word count threshold for the text-length signal.
const minArticleWords = 250

// Classifier judges whether a fetched page looks like an article. It checks
// structural signals (an article element, og:type=article, a time element)
// before falling back to a word-count threshold, so short posts with proper
// markup still qualify.
type Classifier struct{}

// NewClassifier creates a new Classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// LooksLikeArticle reports whether the page carries article signals.
func (c *Classifier) LooksLikeArticle(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}

	if doc.Find("article").Length() > 0 {
		return true
	}

	if ogType, ok := doc.Find("meta[property='og:type']").First().Attr("content"); ok {
		if strings.EqualFold(strings.TrimSpace(ogType), "article") {
			return true
		}
	}

	if doc.Find("time").Length() > 0 {
		return true
	}

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return false
	}
	// Scripts and styles would inflate the word count
	body.Find("script, style, nav, footer, header").Remove()
	return len(strings.Fields(body.Text())) > minArticleWords
}
