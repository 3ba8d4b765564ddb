package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hibbslab/prepdeck/internal/session"
	"github.com/hibbslab/prepdeck/internal/store"
)

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.store.List()
	if err != nil {
		jsonError(w, "failed to list sessions: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type     string `json:"type"`
		Title    string `json:"title"`
		Subtitle string `json:"subtitle"`
		Date     string `json:"date"`
		Format   string `json:"format"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	sess := session.NewOfType(req.Type)
	sess.Title = req.Title
	if sess.Title == "" {
		sess.Title = "Untitled Session"
	}
	sess.Subtitle = req.Subtitle
	sess.Date = req.Date
	sess.Format = req.Format

	if err := s.store.Save(sess); err != nil {
		jsonError(w, "failed to save session: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	existing, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	var updated session.Session
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	// Identity and creation stamp are server-owned.
	updated.ID = existing.ID
	updated.Created = existing.Created

	if err := s.store.Save(&updated); err != nil {
		jsonError(w, "failed to save session: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "session": &updated})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(chi.URLParam(r, "sessionID")); err != nil {
		jsonError(w, "failed to delete session: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleDuplicateSession(w http.ResponseWriter, r *http.Request) {
	copied, err := s.store.Duplicate(chi.URLParam(r, "sessionID"))
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, "failed to duplicate session: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, copied)
}

func (s *Server) handleAddTalkingPoint(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	var tp session.TalkingPoint
	if err := json.NewDecoder(r.Body).Decode(&tp); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	sess.TalkingPoints = append(sess.TalkingPoints, tp)
	s.saveAndAck(w, sess)
}

func (s *Server) handleAddPracticeQuestion(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	var pq session.PracticeQuestion
	if err := json.NewDecoder(r.Body).Decode(&pq); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	sess.PracticeQuestions = append(sess.PracticeQuestions, pq)
	s.saveAndAck(w, sess)
}

func (s *Server) handleAddCheatsheetCard(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	var card session.CheatsheetCard
	if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	sess.CheatsheetCards = append(sess.CheatsheetCards, card)
	s.saveAndAck(w, sess)
}

// loadSession fetches the session named in the URL, writing the error
// response itself when the lookup fails.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.store.Get(chi.URLParam(r, "sessionID"))
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "session not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		jsonError(w, "failed to load session: "+err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return sess, true
}

func (s *Server) saveAndAck(w http.ResponseWriter, sess *session.Session) {
	if err := s.store.Save(sess); err != nil {
		jsonError(w, "failed to save session: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
