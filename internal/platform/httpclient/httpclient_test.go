package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type lookupQuery struct {
	Format string `url:"format,omitempty"`
	Field  string `url:"field,omitempty"`
}

func TestClient_DoJSON_EncodesQuery(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("format") != "json" {
			http.Error(w, "missing format", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ip":"203.0.113.7"}`))
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL, time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	var out struct {
		IP string `json:"ip"`
	}
	if err := c.DoJSON(context.Background(), Request{Path: "/", Query: lookupQuery{Format: "json"}}, &out); err != nil {
		t.Fatalf("do json: %v", err)
	}
	if out.IP != "203.0.113.7" {
		t.Fatalf("unexpected ip %q", out.IP)
	}
}

func TestClient_GetText_Non2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer ts.Close()

	c := New(time.Second)
	_, err := c.GetText(context.Background(), ts.URL, nil)

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected HTTPError 502, got %v", err)
	}
}

func TestClient_RelativePathNeedsBaseURL(t *testing.T) {
	c := New(time.Second)
	if _, err := c.GetText(context.Background(), "/ip", nil); err == nil {
		t.Fatalf("expected error for relative path without BaseURL")
	}
}
