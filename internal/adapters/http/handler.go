package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Yash7702/perspective-pals/internal/app/conversation"
	"github.com/Yash7702/perspective-pals/internal/domain"
)

type Server struct {
	svc      *conversation.Service
	personas *domain.Registry
}

func NewServer(svc *conversation.Service, personas *domain.Registry) http.Handler {
	s := &Server{svc: svc, personas: personas}
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)

	// /personas → persona catalog (GET)
	mux.HandleFunc("/personas", s.handlePersonas)

	// /conversation                        →  GET: active conversation + selection
	// /conversation/messages              → POST: run a turn
	// /conversation/new                   → POST: start a fresh conversation
	// /conversation/personas/{id}/toggle  → POST: toggle a persona
	mux.HandleFunc("/conversation", s.handleConversation)
	mux.HandleFunc("/conversation/messages", s.handleSendMessage)
	mux.HandleFunc("/conversation/new", s.handleNewConversation)
	mux.HandleFunc("/conversation/personas/", s.handleTogglePersona)

	// /conversations           →    GET: history snapshots
	// /conversations/{id}      → DELETE: remove snapshot
	// /conversations/{id}/load →   POST: load snapshot as active
	mux.HandleFunc("/conversations", s.handleHistory)
	mux.HandleFunc("/conversations/", s.handleConversationWithID)

	return chainMiddlewares(mux, withCORS, withLogging, withRequestID)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type personaResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Traits      []string `json:"traits"`
	Thinking    string   `json:"thinking"`
}

type personaRefResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Title string `json:"title,omitempty"`
}

type messageResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    any       `json:"sender"` // "user" or personaRefResponse
	Timestamp time.Time `json:"timestamp"`
}

type conversationResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Messages  []messageResponse `json:"messages"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type conversationStateResponse struct {
	Conversation     conversationResponse `json:"conversation"`
	SelectedPersonas []string             `json:"selected_personas"`
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePersonas(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	personas := s.personas.List()
	out := make([]personaResponse, 0, len(personas))
	for _, p := range personas {
		out = append(out, personaResponse{
			ID:          string(p.ID),
			Name:        p.Name,
			Title:       p.Title,
			Description: p.Description,
			Traits:      p.Traits,
			Thinking:    p.Thinking,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleConversation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, s.stateResponse())
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		badRequest(w, "text is required")
		return
	}

	conv := s.svc.SendMessage(r.Context(), req.Text)
	writeJSON(w, http.StatusOK, conversationStateResponse{
		Conversation:     s.toConversationResponse(conv),
		SelectedPersonas: personaIDStrings(s.svc.SelectedPersonas()),
	})
}

func (s *Server) handleNewConversation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	conv := s.svc.StartNew()
	writeJSON(w, http.StatusCreated, s.toConversationResponse(conv))
}

// /conversation/personas/{id}/toggle
func (s *Server) handleTogglePersona(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/conversation/personas/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "toggle" {
		http.NotFound(w, r)
		return
	}

	id := domain.PersonaID(parts[0])
	if _, err := s.personas.Find(id); err != nil {
		http.NotFound(w, r)
		return
	}

	selected := s.svc.TogglePersona(id)
	writeJSON(w, http.StatusOK, map[string]any{
		"selected_personas": personaIDStrings(selected),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	convs, err := s.svc.ListHistory(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]conversationResponse, 0, len(convs))
	for _, conv := range convs {
		out = append(out, s.toConversationResponse(conv))
	}
	writeJSON(w, http.StatusOK, out)
}

// /conversations/{id} or /conversations/{id}/load
func (s *Server) handleConversationWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/conversations/")
	if path == "" {
		http.NotFound(w, r)
		return
	}

	parts := strings.Split(path, "/")
	id := domain.ConversationID(parts[0])
	if id == "" {
		http.NotFound(w, r)
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodDelete:
			s.handleDeleteConversation(w, r, id)
		default:
			methodNotAllowed(w)
		}
		return
	}

	if len(parts) == 2 && parts[1] == "load" {
		switch r.Method {
		case http.MethodPost:
			s.handleLoadConversation(w, r, id)
		default:
			methodNotAllowed(w)
		}
		return
	}

	http.NotFound(w, r)
}

func (s *Server) handleLoadConversation(w http.ResponseWriter, r *http.Request, id domain.ConversationID) {
	loaded, err := s.svc.Load(r.Context(), id)
	if err != nil {
		internalError(w, err)
		return
	}
	if !loaded {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, s.stateResponse())
}

func (s *Server) handleDeleteConversation(w http.ResponseWriter, r *http.Request, id domain.ConversationID) {
	if err := s.svc.DeleteConversation(r.Context(), id); err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ─────────────────────────────────────────────
// Conversation Helpers
// ─────────────────────────────────────────────

func (s *Server) stateResponse() conversationStateResponse {
	return conversationStateResponse{
		Conversation:     s.toConversationResponse(s.svc.Conversation()),
		SelectedPersonas: personaIDStrings(s.svc.SelectedPersonas()),
	}
}

func (s *Server) toConversationResponse(conv *domain.Conversation) conversationResponse {
	msgs := make([]messageResponse, 0, len(conv.Messages))
	for _, m := range conv.Messages {
		msgs = append(msgs, s.toMessageResponse(m))
	}
	return conversationResponse{
		ID:        string(conv.ID),
		Title:     conv.Title,
		Messages:  msgs,
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
	}
}

func (s *Server) toMessageResponse(m domain.Message) messageResponse {
	out := messageResponse{
		ID:        string(m.ID),
		Content:   m.Content,
		Sender:    "user",
		Timestamp: m.Timestamp,
	}
	if !m.Sender.IsUser() {
		ref := personaRefResponse{ID: string(m.Sender.Persona)}
		if p, err := s.personas.Find(m.Sender.Persona); err == nil {
			ref.Name = p.Name
			ref.Title = p.Title
		}
		out.Sender = ref
	}
	return out
}

func personaIDStrings(ids []domain.PersonaID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return out
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func internalError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
