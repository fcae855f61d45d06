package ollama_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smartgov-assistant/pkg/ollama"
)

func TestGenerate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/generate" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			var req ollama.GenerateRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("bad request body: %v", err)
			}
			if req.Model != "qwen2.5:3b" {
				t.Errorf("expected default model filled in, got %q", req.Model)
			}
			json.NewEncoder(w).Encode(ollama.GenerateResponse{Response: "exgratia_apply", Done: true})
		}))
		defer server.Close()

		client := ollama.NewClient(ollama.Config{BaseURL: server.URL, Model: "qwen2.5:3b"})
		resp, err := client.Generate(context.Background(), &ollama.GenerateRequest{Prompt: "classify"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Response != "exgratia_apply" {
			t.Errorf("unexpected response %q", resp.Response)
		}
	})

	t.Run("Server Error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not loaded", http.StatusInternalServerError)
		}))
		defer server.Close()

		client := ollama.NewClient(ollama.Config{BaseURL: server.URL, Model: "qwen2.5:3b"})
		if _, err := client.Generate(context.Background(), &ollama.GenerateRequest{Prompt: "x"}); err == nil {
			t.Error("expected error on 500")
		}
	})

	t.Run("Context Cancellation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		client := ollama.NewClient(ollama.Config{BaseURL: server.URL, Model: "qwen2.5:3b"})
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		start := time.Now()
		_, err := client.Generate(ctx, &ollama.GenerateRequest{Prompt: "x"})
		if err == nil {
			t.Fatal("expected timeout error")
		}
		if elapsed := time.Since(start); elapsed > 150*time.Millisecond {
			t.Errorf("call did not respect context deadline, took %v", elapsed)
		}
	})
}
