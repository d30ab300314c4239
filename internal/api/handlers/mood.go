package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dom/moodbite/internal/api/middleware"
	"github.com/dom/moodbite/internal/api/response"
	"github.com/dom/moodbite/internal/domain"
	"github.com/dom/moodbite/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MoodHandler struct {
	moodService       *service.MoodService
	suggestionService *service.SuggestionService
	log               *zap.Logger
}

func NewMoodHandler(moodService *service.MoodService, suggestionService *service.SuggestionService, log *zap.Logger) *MoodHandler {
	return &MoodHandler{moodService: moodService, suggestionService: suggestionService, log: log}
}

type SelectMoodRequest struct {
	Mood string `json:"mood"`
}

type MoodSelectionResponse struct {
	ID        string    `json:"id"`
	Mood      string    `json:"mood"`
	CreatedAt time.Time `json:"createdAt"`
}

type SuggestionResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type SelectMoodResponse struct {
	Success     bool                  `json:"success"`
	Message     string                `json:"message"`
	Selection   MoodSelectionResponse `json:"selection"`
	Suggestions []SuggestionResponse  `json:"suggestions"`
}

type MoodHistoryResponse struct {
	Success bool                    `json:"success"`
	History []MoodSelectionResponse `json:"history"`
}

type MoodOptionsResponse struct {
	Success bool     `json:"success"`
	Moods   []string `json:"moods"`
}

type SuggestionsResponse struct {
	Success     bool                 `json:"success"`
	Mood        string               `json:"mood"`
	Suggestions []SuggestionResponse `json:"suggestions"`
}

type CatalogResponse struct {
	Success     bool                            `json:"success"`
	Count       int                             `json:"count"`
	Suggestions map[string][]SuggestionResponse `json:"suggestions"`
}

func newSuggestionResponses(suggestions []*domain.FoodSuggestion) []SuggestionResponse {
	out := make([]SuggestionResponse, len(suggestions))
	for i, s := range suggestions {
		tags := s.TagList()
		if tags == nil {
			tags = []string{}
		}
		out[i] = SuggestionResponse{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Tags:        tags,
		}
	}
	return out
}

func newMoodSelectionResponse(s *domain.MoodSelection) MoodSelectionResponse {
	return MoodSelectionResponse{ID: s.ID.String(), Mood: s.Mood, CreatedAt: s.CreatedAt}
}

func (h *MoodHandler) Select(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, h.log, "mood.Select", domain.ErrMissingToken)
		return
	}

	var req SelectMoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		decodeError(w)
		return
	}

	clientInfo := map[string]any{
		"userAgent":  r.UserAgent(),
		"remoteAddr": r.RemoteAddr,
	}

	result, err := h.moodService.RecordMood(r.Context(), userID, req.Mood, clientInfo)
	if err != nil {
		writeError(w, h.log, "mood.Select", err)
		return
	}

	response.JSON(w, http.StatusOK, SelectMoodResponse{
		Success:     true,
		Message:     "Mood selection recorded",
		Selection:   newMoodSelectionResponse(result.Selection),
		Suggestions: newSuggestionResponses(result.Suggestions),
	})
}

func (h *MoodHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, h.log, "mood.History", domain.ErrMissingToken)
		return
	}

	selections, err := h.moodService.ListMoodHistory(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, "mood.History", err)
		return
	}

	resp := MoodHistoryResponse{
		Success: true,
		History: make([]MoodSelectionResponse, len(selections)),
	}
	for i, s := range selections {
		resp.History[i] = newMoodSelectionResponse(s)
	}

	response.JSON(w, http.StatusOK, resp)
}

func (h *MoodHandler) Options(w http.ResponseWriter, r *http.Request) {
	moods := h.suggestionService.Moods()
	resp := MoodOptionsResponse{Success: true, Moods: make([]string, len(moods))}
	for i, m := range moods {
		resp.Moods[i] = string(m)
	}
	response.JSON(w, http.StatusOK, resp)
}

func (h *MoodHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	mood := chi.URLParam(r, "mood")

	suggestions, err := h.suggestionService.ForMood(r.Context(), mood)
	if err != nil {
		writeError(w, h.log, "mood.Suggestions", err)
		return
	}

	response.JSON(w, http.StatusOK, SuggestionsResponse{
		Success:     true,
		Mood:        domain.NormalizeMood(mood),
		Suggestions: newSuggestionResponses(suggestions),
	})
}

// Catalog lists every suggestion grouped by mood.
func (h *MoodHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.suggestionService.All(r.Context())
	if err != nil {
		writeError(w, h.log, "mood.Catalog", err)
		return
	}

	byMood := make(map[string][]*domain.FoodSuggestion)
	for _, s := range suggestions {
		byMood[s.Mood] = append(byMood[s.Mood], s)
	}

	resp := CatalogResponse{
		Success:     true,
		Count:       len(suggestions),
		Suggestions: make(map[string][]SuggestionResponse, len(byMood)),
	}
	for mood, list := range byMood {
		resp.Suggestions[mood] = newSuggestionResponses(list)
	}

	response.JSON(w, http.StatusOK, resp)
}
