package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDoJSON_SendsHeadersAndDecodes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Client-ID") != "cli-client-1" {
			http.Error(w, "missing client", http.StatusBadRequest)
			return
		}
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": in["passphrase"], "path": r.URL.Path})
	}))
	defer ts.Close()

	c, err := New(ts.URL+"/", 0, nil)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	c.Headers["X-Client-ID"] = "cli-client-1"

	var out map[string]string
	if err := c.DoJSON(context.Background(), http.MethodPost, "admin/login", map[string]string{"passphrase": "x"}, &out); err != nil {
		t.Fatalf("DoJSON error: %v", err)
	}
	if out["echo"] != "x" || out["path"] != "/admin/login" {
		t.Fatalf("unexpected response: %v", out)
	}
}

func TestDoJSON_Non2xxIsHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "admin session required", http.StatusUnauthorized)
	}))
	defer ts.Close()

	c, _ := New(ts.URL, 0, nil)
	err := c.DoJSON(context.Background(), http.MethodGet, "/admin/pets", nil, nil)
	if StatusCode(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
	if he, ok := err.(*HTTPError); !ok || he.Body != "admin session required" {
		t.Fatalf("unexpected error body: %v", err)
	}
}

func TestDownload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("PK\x03\x04"))
	}))
	defer ts.Close()

	c, _ := New(ts.URL, 0, nil)
	b, err := c.Download(context.Background(), "/admin/pets/export.xlsx")
	if err != nil || string(b) != "PK\x03\x04" {
		t.Fatalf("unexpected download: %q %v", b, err)
	}
}

func TestNew_RejectsBadURL(t *testing.T) {
	if _, err := New("not a url", 0, nil); err == nil {
		t.Fatalf("expected error for invalid base url")
	}
}
