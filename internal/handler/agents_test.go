package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"toolhub/internal/agent"
)

type completerFunc func(ctx context.Context, system, user string) (string, error)

func (f completerFunc) Complete(ctx context.Context, system, user string) (string, error) {
	return f(ctx, system, user)
}

func newAgentsRouter(complete completerFunc) *gin.Engine {
	r := gin.New()
	h := &AgentsHandler{Runner: &agent.Runner{Client: complete}}
	h.Register(r)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, payload string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return w, body
}

func TestListAgents(t *testing.T) {
	r := newAgentsRouter(nil)
	req := httptest.NewRequest(http.MethodGet, "/agents", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Agents []struct {
			ID             string   `json:"id"`
			RequiredInputs []string `json:"required_inputs"`
		} `json:"agents"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Agents) < 7 {
		t.Fatalf("got %d agents, want at least 7", len(body.Agents))
	}
	for i := 1; i < len(body.Agents); i++ {
		if body.Agents[i-1].ID >= body.Agents[i].ID {
			t.Fatalf("agents not sorted by id: %q before %q", body.Agents[i-1].ID, body.Agents[i].ID)
		}
	}
}

func TestRunAgentOK(t *testing.T) {
	r := newAgentsRouter(func(_ context.Context, system, user string) (string, error) {
		if system == "" || !strings.Contains(user, "hello world") {
			return "", fmt.Errorf("unexpected prompt: %q / %q", system, user)
		}
		return "  a short summary  ", nil
	})

	w, body := postJSON(t, r, "/agents/summarizer", `{"inputs": {"text": "hello world"}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if body["output"] != "a short summary" {
		t.Fatalf("output = %v, want trimmed summary", body["output"])
	}
	if body["agent"] != "summarizer" {
		t.Fatalf("agent = %v", body["agent"])
	}
}

func TestRunAgentUnknown(t *testing.T) {
	r := newAgentsRouter(nil)
	w, _ := postJSON(t, r, "/agents/nope", `{"inputs": {}}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestRunAgentMissingInputs(t *testing.T) {
	r := newAgentsRouter(nil)
	w, body := postJSON(t, r, "/agents/translator", `{"inputs": {"text": "bonjour"}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	missing, ok := body["missing"].([]any)
	if !ok || len(missing) != 1 || missing[0] != "language" {
		t.Fatalf("missing = %v, want [language]", body["missing"])
	}
}

func TestRunAgentUpstreamFailure(t *testing.T) {
	r := newAgentsRouter(func(_ context.Context, _, _ string) (string, error) {
		return "", fmt.Errorf("model overloaded")
	})
	w, _ := postJSON(t, r, "/agents/summarizer", `{"inputs": {"text": "hello"}}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
}
