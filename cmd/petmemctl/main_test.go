package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"pet-memorial/internal/config"
	"pet-memorial/internal/router"
)

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{}
	cfg.Admin.Passphrase = "s3cret"
	ts := httptest.NewServer(router.NewRouter(router.Options{Config: cfg}))
	t.Cleanup(ts.Close)
	return ts
}

func seedPet(t *testing.T, baseURL, name string) string {
	t.Helper()
	b, _ := json.Marshal(map[string]any{
		"name":        name,
		"type":        "Gato",
		"description": "d",
		"images":      []string{"x"},
	})
	req, _ := http.NewRequest(http.MethodPost, baseURL+"/pets", bytes.NewReader(b))
	req.Header.Set("X-Client-ID", "owner-browser")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	defer res.Body.Close()
	var out struct {
		ID string `json:"id"`
	}
	_ = json.NewDecoder(res.Body).Decode(&out)
	return out.ID
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_ListDeleteExport(t *testing.T) {
	ts := newAPI(t)
	id := seedPet(t, ts.URL, "Mia")

	code, out, errOut := runCLI(t, "-url", ts.URL, "-passphrase", "s3cret", "list")
	if code != 0 || !strings.Contains(out, id) || !strings.Contains(out, "Mia") {
		t.Fatalf("list: code=%d out=%q err=%q", code, out, errOut)
	}

	file := filepath.Join(t.TempDir(), "pets.xlsx")
	code, _, errOut = runCLI(t, "-url", ts.URL, "-passphrase", "s3cret", "export", file)
	if code != 0 {
		t.Fatalf("export: code=%d err=%q", code, errOut)
	}
	if b, err := os.ReadFile(file); err != nil || !bytes.HasPrefix(b, []byte("PK")) {
		t.Fatalf("export file is not an xlsx: %v", err)
	}

	code, out, _ = runCLI(t, "-url", ts.URL, "-passphrase", "s3cret", "delete", id)
	if code != 0 || !strings.Contains(out, "deleted "+id) {
		t.Fatalf("delete: code=%d out=%q", code, out)
	}

	code, _, errOut = runCLI(t, "-url", ts.URL, "-passphrase", "s3cret", "delete", id)
	if code != 1 || !strings.Contains(errOut, "not found") {
		t.Fatalf("second delete: code=%d err=%q", code, errOut)
	}

	code, out, _ = runCLI(t, "-url", ts.URL, "-passphrase", "s3cret", "purge")
	if code != 0 || !strings.Contains(out, "purged 0") {
		t.Fatalf("purge: code=%d out=%q", code, out)
	}
}

func TestRun_WrongPassphrase(t *testing.T) {
	ts := newAPI(t)

	code, _, errOut := runCLI(t, "-url", ts.URL, "-passphrase", "nope", "list")
	if code != 1 || !strings.Contains(errOut, "invalid passphrase") {
		t.Fatalf("expected login rejection, code=%d err=%q", code, errOut)
	}
}

func TestRun_HashPassphraseAndUsage(t *testing.T) {
	code, out, _ := runCLI(t, "hash-passphrase", "s3cret")
	if code != 0 || !strings.Contains(out, "$") {
		t.Fatalf("hash-passphrase: code=%d out=%q", code, out)
	}

	if code, _, _ := runCLI(t); code != 2 {
		t.Fatalf("expected usage exit code 2, got %d", code)
	}
	if code, _, _ := runCLI(t, "-url", "http://localhost:1", "-passphrase", "x", "delete"); code != 2 {
		t.Fatalf("expected exit code 2 for missing id, got %d", code)
	}
}

// fakeAdminAPI registra el X-Client-ID de cada login; logoutStatus define la respuesta del logout.
type fakeAdminAPI struct {
	mu           sync.Mutex
	logins       []string
	logoutStatus int
}

func (f *fakeAdminAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/admin/login":
		f.mu.Lock()
		f.logins = append(f.logins, r.Header.Get("X-Client-ID"))
		f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"authenticated":true}`))
	case "/admin/pets":
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	case "/admin/logout":
		w.WriteHeader(f.logoutStatus)
	default:
		http.NotFound(w, r)
	}
}

func TestRun_FreshClientIDPerRun(t *testing.T) {
	t.Setenv("PETMEM_CLIENT_ID", "")
	api := &fakeAdminAPI{logoutStatus: http.StatusNoContent}
	ts := httptest.NewServer(api)
	defer ts.Close()

	for i := 0; i < 2; i++ {
		if code, _, errOut := runCLI(t, "-url", ts.URL, "-passphrase", "s3cret", "list"); code != 0 {
			t.Fatalf("run %d: code=%d err=%q", i, code, errOut)
		}
	}

	if len(api.logins) != 2 {
		t.Fatalf("expected 2 logins, got %d", len(api.logins))
	}
	if api.logins[0] == "" || api.logins[0] == api.logins[1] {
		t.Fatalf("each run must use its own client id, got %q and %q", api.logins[0], api.logins[1])
	}
}

func TestRun_LogoutFailureIsReported(t *testing.T) {
	api := &fakeAdminAPI{logoutStatus: http.StatusInternalServerError}
	ts := httptest.NewServer(api)
	defer ts.Close()

	code, _, errOut := runCLI(t, "-url", ts.URL, "-passphrase", "s3cret", "list")
	if code != 1 || !strings.Contains(errOut, "logout failed") {
		t.Fatalf("expected logout failure to exit 1, code=%d err=%q", code, errOut)
	}
}
