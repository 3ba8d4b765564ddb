package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hibbslab/prepdeck/internal/config"
	"github.com/hibbslab/prepdeck/internal/session"
	"github.com/hibbslab/prepdeck/internal/store"
)

func newTestServer(t *testing.T, cfg config.Config) *Server {
	t.Helper()
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(st, log, cfg)
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, w.Body.String())
	}
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, config.Config{})
	w := doJSON(t, srv, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestSessionCRUD(t *testing.T) {
	srv := newTestServer(t, config.Config{})

	// Create with defaults.
	w := doJSON(t, srv, http.MethodPost, "/api/sessions", map[string]string{"type": "pitch"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}
	created := decode[session.Session](t, w)
	if created.ID == "" || created.Title != "Untitled Session" || created.Type != "pitch" {
		t.Fatalf("created = %+v", created)
	}
	if created.PitchVariants == nil {
		t.Error("pitch session must carry pitch variants")
	}

	// Get.
	w = doJSON(t, srv, http.MethodGet, "/api/sessions/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	// Update keeps server-owned fields.
	update := created
	update.ID = "spoofed"
	update.Title = "Renamed"
	w = doJSON(t, srv, http.MethodPut, "/api/sessions/"+created.ID, update)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", w.Code, w.Body.String())
	}
	w = doJSON(t, srv, http.MethodGet, "/api/sessions/"+created.ID, nil)
	got := decode[session.Session](t, w)
	if got.ID != created.ID || got.Title != "Renamed" {
		t.Errorf("after update = %+v", got)
	}

	// List.
	w = doJSON(t, srv, http.MethodGet, "/api/sessions", nil)
	list := decode[struct {
		Sessions []session.Session `json:"sessions"`
	}](t, w)
	if len(list.Sessions) != 1 {
		t.Errorf("list = %+v", list.Sessions)
	}

	// Duplicate.
	w = doJSON(t, srv, http.MethodPost, "/api/sessions/"+created.ID+"/duplicate", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("duplicate status = %d", w.Code)
	}
	dup := decode[session.Session](t, w)
	if dup.Title != "Renamed (Copy)" {
		t.Errorf("duplicate title = %q", dup.Title)
	}

	// Delete.
	w = doJSON(t, srv, http.MethodDelete, "/api/sessions/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	w = doJSON(t, srv, http.MethodGet, "/api/sessions/"+created.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d", w.Code)
	}
}

func TestGetSession_NotFound(t *testing.T) {
	srv := newTestServer(t, config.Config{})
	w := doJSON(t, srv, http.MethodGet, "/api/sessions/nosuch00", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d", w.Code)
	}
}

func TestAddTalkingPoint(t *testing.T) {
	srv := newTestServer(t, config.Config{})
	created := decode[session.Session](t, doJSON(t, srv, http.MethodPost, "/api/sessions", map[string]string{}))

	w := doJSON(t, srv, http.MethodPost, "/api/sessions/"+created.ID+"/talking-points",
		session.TalkingPoint{Label: "Opening", Note: "<p>hi</p>"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	got := decode[session.Session](t, doJSON(t, srv, http.MethodGet, "/api/sessions/"+created.ID, nil))
	if len(got.TalkingPoints) != 1 || got.TalkingPoints[0].Label != "Opening" {
		t.Errorf("talking points = %+v", got.TalkingPoints)
	}
}

func uploadFile(t *testing.T, srv *Server, filename, content string, create bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(fw, content); err != nil {
		t.Fatal(err)
	}
	if create {
		if err := mw.WriteField("create", "true"); err != nil {
			t.Fatal(err)
		}
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func TestImport_PreviewAndCreate(t *testing.T) {
	srv := newTestServer(t, config.Config{MaxUploadBytes: 1 << 20, ScanLimit: 10})
	content := "# Q1 Review\n\n## Highlights\nRevenue grew 20%.\n"

	// Preview does not persist.
	w := uploadFile(t, srv, "review.txt", content, false)
	if w.Code != http.StatusOK {
		t.Fatalf("preview status = %d, body %s", w.Code, w.Body.String())
	}
	preview := decode[session.Session](t, w)
	if preview.Title != "Q1 Review" || preview.ID != "" {
		t.Errorf("preview = %+v", preview)
	}

	list := decode[struct {
		Sessions []session.Session `json:"sessions"`
	}](t, doJSON(t, srv, http.MethodGet, "/api/sessions", nil))
	if len(list.Sessions) != 0 {
		t.Fatalf("preview must not persist, list = %+v", list.Sessions)
	}

	// create=true persists and returns 201.
	w = uploadFile(t, srv, "review.txt", content, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}
	saved := decode[session.Session](t, w)
	if saved.ID == "" {
		t.Error("saved session must have an id")
	}
}

func TestImport_UnsupportedExtension(t *testing.T) {
	srv := newTestServer(t, config.Config{MaxUploadBytes: 1 << 20})
	w := uploadFile(t, srv, "doc.pdf", "%PDF-1.4", false)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestImport_MalformedSlideDeck(t *testing.T) {
	srv := newTestServer(t, config.Config{MaxUploadBytes: 1 << 20})
	w := uploadFile(t, srv, "deck.html", `<html><body><p>reveal</p></body></html>`, false)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestImport_TooLarge(t *testing.T) {
	srv := newTestServer(t, config.Config{MaxUploadBytes: 64})
	w := uploadFile(t, srv, "big.txt", strings.Repeat("x", 200), false)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddleware(t *testing.T) {
	srv := newTestServer(t, config.Config{APIKey: "secret"})

	// Health stays open.
	w := doJSON(t, srv, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("health status = %d", w.Code)
	}

	w = doJSON(t, srv, http.MethodGet, "/api/sessions", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestScanFolder(t *testing.T) {
	srv := newTestServer(t, config.Config{ScanLimit: 10})
	dir := t.TempDir()
	writeScanFile(t, dir, "a.txt", "hello")
	writeScanFile(t, dir, "b.html", "<html><body>reveal</body></html>")
	writeScanFile(t, dir, "skip.pdf", "%PDF")

	w := doJSON(t, srv, http.MethodPost, "/api/scan", map[string]string{"folder": dir})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	resp := decode[struct {
		Files []map[string]any `json:"files"`
	}](t, w)
	if len(resp.Files) != 2 {
		t.Fatalf("files = %+v", resp.Files)
	}
}

func writeScanFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanFolder_MissingFolder(t *testing.T) {
	srv := newTestServer(t, config.Config{ScanLimit: 10})
	w := doJSON(t, srv, http.MethodPost, "/api/scan", map[string]string{"folder": "/no/such/dir"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct{ in, want string }{
		{"report.html", "report.html"},
		{"../../etc/passwd", "passwd"},
		{"a..b.txt", "a_b.txt"},
		{"", "unnamed"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
