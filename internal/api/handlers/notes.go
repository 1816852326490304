package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/aviksec/notes-vault/internal/api/middleware"
	"github.com/aviksec/notes-vault/internal/domain"
	"github.com/aviksec/notes-vault/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type NoteHandler struct {
	noteService *service.NoteService
}

func NewNoteHandler(noteService *service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

type NoteRequest struct {
	Title            string `json:"title"`
	EncryptedContent string `json:"encryptedContent"`
}

type NoteResponse struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	EncryptedContent string    `json:"encryptedContent"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	notes, err := h.noteService.List(r.Context(), identity.UserID, r.URL.Query().Get("search"))
	if err != nil {
		log.Printf("ERROR [handlers.Note] list failed: %v", err)
		http.Error(w, "An error occurred. Please try again later.", http.StatusInternalServerError)
		return
	}

	resp := make([]NoteResponse, 0, len(notes))
	for _, note := range notes {
		resp = append(resp, toNoteResponse(note))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	note, err := h.noteService.Create(r.Context(), identity.UserID, req.Title, req.EncryptedContent)
	if err != nil {
		h.writeNoteError(w, "create", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toNoteResponse(note))
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	noteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid note ID", http.StatusBadRequest)
		return
	}

	note, err := h.noteService.Get(r.Context(), identity.UserID, noteID)
	if err != nil {
		h.writeNoteError(w, "get", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toNoteResponse(note))
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	noteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid note ID", http.StatusBadRequest)
		return
	}

	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	note, err := h.noteService.Update(r.Context(), identity.UserID, noteID, req.Title, req.EncryptedContent)
	if err != nil {
		h.writeNoteError(w, "update", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toNoteResponse(note))
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	noteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid note ID", http.StatusBadRequest)
		return
	}

	if err := h.noteService.Delete(r.Context(), identity.UserID, noteID); err != nil {
		h.writeNoteError(w, "delete", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func (h *NoteHandler) writeNoteError(w http.ResponseWriter, op string, err error) {
	switch {
	case domain.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrNoteNotFound):
		http.Error(w, "Note not found", http.StatusNotFound)
	default:
		log.Printf("ERROR [handlers.Note] %s failed: %v", op, err)
		http.Error(w, "An error occurred. Please try again later.", http.StatusInternalServerError)
	}
}

func toNoteResponse(note *domain.Note) NoteResponse {
	return NoteResponse{
		ID:               note.ID.String(),
		Title:            note.Title,
		EncryptedContent: note.EncryptedContent,
		CreatedAt:        note.CreatedAt,
		UpdatedAt:        note.UpdatedAt,
	}
}
