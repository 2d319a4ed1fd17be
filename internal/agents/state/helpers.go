package state

import (
	"google.golang.org/adk/session"
)

// Typed accessors for the article fields. Getters default to "" when the key
// is missing or holds a non-string value.

// SetSearchResults records the search agent's collected notes.
func SetSearchResults(state session.State, text string) error {
	return state.Set(KeySearchResults, text)
}

// GetSearchResults returns the recorded search results.
func GetSearchResults(state session.ReadonlyState) string {
	return getString(state, KeySearchResults)
}

// SetPostArticleContent records the drafted blog post.
func SetPostArticleContent(state session.State, text string) error {
	return state.Set(KeyPostArticleContent, text)
}

// GetPostArticleContent returns the drafted blog post.
func GetPostArticleContent(state session.ReadonlyState) string {
	return getString(state, KeyPostArticleContent)
}

// SetImprovedPostArticle records the SEO-improved final article.
func SetImprovedPostArticle(state session.State, text string) error {
	return state.Set(KeyImprovedPostArticle, text)
}

// GetImprovedPostArticle returns the SEO-improved final article.
func GetImprovedPostArticle(state session.ReadonlyState) string {
	return getString(state, KeyImprovedPostArticle)
}

func getString(state session.ReadonlyState, key string) string {
	val, err := state.Get(key)
	if err != nil {
		return ""
	}
	if text, ok := val.(string); ok {
		return text
	}
	return ""
}
