package handlers

import (
	"net/http"

	"github.com/dom/moodbite/internal/api/response"
	"github.com/dom/moodbite/internal/domain"
	"github.com/dom/moodbite/internal/service"
	"go.uber.org/zap"
)

// AdminHandler serves the dashboard endpoints. Any authenticated caller may use
// them; there is no role model.
type AdminHandler struct {
	contactService   *service.ContactService
	analyticsService *service.AnalyticsService
	log              *zap.Logger
}

func NewAdminHandler(contactService *service.ContactService, analyticsService *service.AnalyticsService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{contactService: contactService, analyticsService: analyticsService, log: log}
}

type ContactsResponse struct {
	Success  bool                     `json:"success"`
	Count    int                      `json:"count"`
	Contacts []ContactMessageResponse `json:"contacts"`
}

type AnalyticsResponse struct {
	Success   bool              `json:"success"`
	Analytics *domain.Analytics `json:"analytics"`
}

func (h *AdminHandler) Contacts(w http.ResponseWriter, r *http.Request) {
	messages, err := h.contactService.ListContacts(r.Context())
	if err != nil {
		writeError(w, h.log, "admin.Contacts", err)
		return
	}

	resp := ContactsResponse{
		Success:  true,
		Count:    len(messages),
		Contacts: make([]ContactMessageResponse, len(messages)),
	}
	for i, m := range messages {
		resp.Contacts[i] = newContactMessageResponse(m)
	}

	response.JSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analyticsService.Summary(r.Context())
	if err != nil {
		writeError(w, h.log, "admin.Analytics", err)
		return
	}

	response.JSON(w, http.StatusOK, AnalyticsResponse{Success: true, Analytics: summary})
}
