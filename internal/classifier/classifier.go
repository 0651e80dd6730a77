package classifier

import "strings"

// DefaultKeywords is the baseline AI keyword set, used when config does not
// override it.
var DefaultKeywords = []string{
	"ai", "artificial intelligence", "machine learning", "ml",
	"llm", "gpt", "chatbot", "nlp", "neural", "deep learning",
	"automation", "generative", "computer vision", "copilot",
}

// Classifier decides whether a raw record is an AI tool. Pure: same input
// always yields the same answer.
type Classifier struct {
	keywords []string
}

func New(keywords []string) *Classifier {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			normalized = append(normalized, kw)
		}
	}
	return &Classifier{keywords: normalized}
}

// IsAITool matches the keyword set against the concatenated text fields and
// against each topic tag. Boolean only, no scoring.
func (c *Classifier) IsAITool(name, tagline, description string, topics []string) bool {
	text := strings.ToLower(name + " " + tagline + " " + description)
	for _, kw := range c.keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	for _, topic := range topics {
		lower := strings.ToLower(topic)
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}
