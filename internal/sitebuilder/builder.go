package sitebuilder

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const systemPrompt = `You are an expert React developer. Output a complete,
self-contained React function component named App in plain JavaScript (no
imports, no exports, no TypeScript). Use inline styles only. Output code
only, no commentary.`

// htmlShell is the static page the generated component is embedded into.
// React UMD plus Babel standalone so the single file renders as-is in a
// sandboxed iframe.
const htmlShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Generated Site</title>
<script crossorigin src="https://unpkg.com/react@18/umd/react.production.min.js"></script>
<script crossorigin src="https://unpkg.com/react-dom@18/umd/react-dom.production.min.js"></script>
<script src="https://unpkg.com/@babel/standalone/babel.min.js"></script>
<style>body{margin:0;font-family:system-ui,sans-serif;}</style>
</head>
<body>
<div id="root"></div>
<script type="text/babel">
%s
ReactDOM.createRoot(document.getElementById('root')).render(<App />);
</script>
</body>
</html>
`

// Completer is the LLM surface the builder depends on.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type Builder struct {
	Client Completer
	Logger *zap.Logger
}

// Generate prompts the model for a single-file React component and wraps it
// in the static HTML shell.
func (b *Builder) Generate(ctx context.Context, description string) (component, html string, err error) {
	prompt := "Build a single-page website for the following description:\n\n" + description
	raw, err := b.Client.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		if b.Logger != nil {
			b.Logger.Warn("website generation failed", zap.Error(err))
		}
		return "", "", fmt.Errorf("generate website: %w", err)
	}

	component = StripFences(raw)
	if strings.TrimSpace(component) == "" {
		return "", "", fmt.Errorf("generate website: empty component")
	}
	return component, WrapHTML(component), nil
}

// StripFences removes a surrounding markdown code fence, if present.
func StripFences(s string) string {
	out := strings.TrimSpace(s)
	if !strings.HasPrefix(out, "```") {
		return out
	}
	out = strings.TrimPrefix(out, "```")
	// drop the language tag on the opening fence line
	if idx := strings.Index(out, "\n"); idx >= 0 {
		out = out[idx+1:]
	}
	out = strings.TrimSuffix(strings.TrimSpace(out), "```")
	return strings.TrimSpace(out)
}

// WrapHTML embeds the component into the static shell.
func WrapHTML(component string) string {
	return fmt.Sprintf(htmlShell, component)
}
