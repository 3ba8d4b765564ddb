package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/hibbslab/prepdeck/internal/importer"
)

// handleImport accepts a multipart upload, runs the import pipeline on
// it, and either returns the extracted session as a preview or, with
// create=true, persists it and returns the stored record.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !importer.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	// The importer works on paths; stage the upload in a temp file with
	// the original extension so type detection sees it.
	tmp, err := os.CreateTemp("", "prepdeck-*"+filepath.Ext(filename))
	if err != nil {
		jsonError(w, "failed to stage upload", http.StatusInternalServerError)
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		jsonError(w, "failed to stage upload", http.StatusInternalServerError)
		return
	}
	tmp.Close()

	sess, err := importer.Import(tmpPath)
	if err != nil {
		s.log.Warn("import failed", "filename", filename, "error", err)
		writeImportError(w, err)
		return
	}

	if r.FormValue("create") == "true" {
		if err := s.store.Save(sess); err != nil {
			jsonError(w, "failed to save session: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, sess)
		return
	}

	writeJSON(w, http.StatusOK, sess)
}

// handleScanFolder lists importable files in a local folder so a caller
// can pre-filter before importing.
func (s *Server) handleScanFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Folder string `json:"folder"`
	}
	if err := readJSON(r, &req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	info, err := os.Stat(req.Folder)
	if err != nil || !info.IsDir() {
		jsonError(w, "folder not found", http.StatusBadRequest)
		return
	}

	entries, err := os.ReadDir(req.Folder)
	if err != nil {
		jsonError(w, "failed to read folder: "+err.Error(), http.StatusInternalServerError)
		return
	}

	files := []map[string]any{}
	for _, entry := range entries {
		if entry.IsDir() || !importer.IsSupportedExtension(entry.Name()) {
			continue
		}
		if len(files) >= s.cfg.ScanLimit {
			break
		}
		path := filepath.Join(req.Folder, entry.Name())
		ftype, err := importer.DetectType(path)
		if err != nil {
			continue
		}
		size := int64(0)
		if fi, err := entry.Info(); err == nil {
			size = fi.Size()
		}
		files = append(files, map[string]any{
			"name": entry.Name(),
			"type": ftype,
			"size": size,
			"path": path,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"folder": req.Folder, "files": files})
}

// writeImportError maps importer error kinds onto HTTP statuses.
func writeImportError(w http.ResponseWriter, err error) {
	var ie *importer.ImportError
	if !errors.As(err, &ie) {
		jsonError(w, "import failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	status := http.StatusInternalServerError
	switch ie.Kind {
	case importer.KindUnsupportedType:
		status = http.StatusBadRequest
	case importer.KindFileUnreadable:
		status = http.StatusBadRequest
	case importer.KindMalformedContent:
		status = http.StatusUnprocessableEntity
	}
	jsonError(w, ie.Reason, status)
}

func readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
