package agent

import (
	"fmt"
	"sort"
	"strings"
)

// Agent is one form-to-prompt wrapper: declared inputs plus a prompt
// builder, instead of inline branching per agent.
type Agent struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	RequiredInputs []string `json:"required_inputs"`
	System         string   `json:"-"`
	BuildPrompt    func(inputs map[string]string) string `json:"-"`
}

var registry = map[string]Agent{
	"summarizer": {
		ID:             "summarizer",
		Name:           "Text Summarizer",
		RequiredInputs: []string{"text"},
		System:         "You are a concise summarizer. Reply with the summary only.",
		BuildPrompt: func(in map[string]string) string {
			return "Summarize the following text in a short paragraph:\n\n" + in["text"]
		},
	},
	"email-writer": {
		ID:             "email-writer",
		Name:           "Email Writer",
		RequiredInputs: []string{"recipient", "purpose"},
		System:         "You write clear, professional emails. Reply with the email only.",
		BuildPrompt: func(in map[string]string) string {
			tone := in["tone"]
			if tone == "" {
				tone = "professional"
			}
			return fmt.Sprintf("Write a %s email to %s. Purpose: %s", tone, in["recipient"], in["purpose"])
		},
	},
	"blog-outline": {
		ID:             "blog-outline",
		Name:           "Blog Outline Generator",
		RequiredInputs: []string{"topic"},
		System:         "You are a content strategist.",
		BuildPrompt: func(in map[string]string) string {
			return "Create a detailed blog post outline with headings and bullet points for the topic: " + in["topic"]
		},
	},
	"code-explainer": {
		ID:             "code-explainer",
		Name:           "Code Explainer",
		RequiredInputs: []string{"code"},
		System:         "You explain code to developers. Be precise and brief.",
		BuildPrompt: func(in map[string]string) string {
			return "Explain what the following code does, step by step:\n\n" + in["code"]
		},
	},
	"translator": {
		ID:             "translator",
		Name:           "Translator",
		RequiredInputs: []string{"text", "language"},
		System:         "You are a translator. Reply with the translation only.",
		BuildPrompt: func(in map[string]string) string {
			return fmt.Sprintf("Translate the following text to %s:\n\n%s", in["language"], in["text"])
		},
	},
	"product-description": {
		ID:             "product-description",
		Name:           "Product Description Writer",
		RequiredInputs: []string{"product", "audience"},
		System:         "You write persuasive marketing copy.",
		BuildPrompt: func(in map[string]string) string {
			return fmt.Sprintf("Write a compelling product description for %q aimed at %s.", in["product"], in["audience"])
		},
	},
	"social-post": {
		ID:             "social-post",
		Name:           "Social Post Generator",
		RequiredInputs: []string{"topic", "platform"},
		System:         "You write engaging social media posts.",
		BuildPrompt: func(in map[string]string) string {
			return fmt.Sprintf("Write a post about %s for %s. Match the platform's usual tone and length.", in["topic"], in["platform"])
		},
	},
}

// Get returns the agent for id, or false when unknown.
func Get(id string) (Agent, bool) {
	a, ok := registry[strings.ToLower(strings.TrimSpace(id))]
	return a, ok
}

// List returns all agents sorted by id.
func List() []Agent {
	out := make([]Agent, 0, len(registry))
	for _, a := range registry {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// MissingInputs reports which required inputs are absent or blank.
func (a Agent) MissingInputs(inputs map[string]string) []string {
	var missing []string
	for _, key := range a.RequiredInputs {
		if strings.TrimSpace(inputs[key]) == "" {
			missing = append(missing, key)
		}
	}
	return missing
}
