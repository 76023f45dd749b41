package llm

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func gatewayStub(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token")
		}
		w.WriteHeader(status)
		if status == http.StatusOK {
			resp := ChatResponse{Choices: []Choice{{Message: Message{Role: "assistant", Content: content}}}}
			_ = json.NewEncoder(w).Encode(resp)
		} else {
			_, _ = w.Write([]byte(`{"error":"nope"}`))
		}
	}))
}

func TestChatReturnsContent(t *testing.T) {
	srv := gatewayStub(t, http.StatusOK, "hello there")
	defer srv.Close()

	c := NewClientWithBase(srv.URL, "test-key", "test-model")
	got, err := c.Chat([]Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello there" {
		t.Errorf("got %q", got)
	}
}

func TestChatRateLimited(t *testing.T) {
	srv := gatewayStub(t, http.StatusTooManyRequests, "")
	defer srv.Close()

	c := NewClientWithBase(srv.URL, "test-key", "test-model")
	_, err := c.Chat([]Message{{Role: "user", Content: "hi"}})
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("got %v, want ErrRateLimited", err)
	}
}

func TestChatQuotaExhausted(t *testing.T) {
	srv := gatewayStub(t, http.StatusPaymentRequired, "")
	defer srv.Close()

	c := NewClientWithBase(srv.URL, "test-key", "test-model")
	_, err := c.Chat([]Message{{Role: "user", Content: "hi"}})
	if !errors.Is(err, ErrQuotaExhausted) {
		t.Errorf("got %v, want ErrQuotaExhausted", err)
	}
}

func TestChatJSONStripsFences(t *testing.T) {
	srv := gatewayStub(t, http.StatusOK, "```json\n{\"answer\": 42}\n```")
	defer srv.Close()

	c := NewClientWithBase(srv.URL, "test-key", "test-model")
	var out struct {
		Answer int `json:"answer"`
	}
	raw, err := c.ChatJSON([]Message{{Role: "user", Content: "hi"}}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Answer != 42 {
		t.Errorf("answer = %d", out.Answer)
	}
	if raw == "" || raw == StripFences(raw) {
		t.Errorf("raw reply should be kept verbatim, got %q", raw)
	}
}

func TestStripFences(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":                     "{\"a\":1}",
		"```json\n{\"a\":1}\n```":       "{\"a\":1}",
		"```\n{\"a\":1}\n```":           "{\"a\":1}",
		"  ```json\n{\"a\":1}\n```  \n": "{\"a\":1}",
	}
	for in, want := range cases {
		if got := StripFences(in); got != want {
			t.Errorf("StripFences(%q) = %q, want %q", in, got, want)
		}
	}
}
