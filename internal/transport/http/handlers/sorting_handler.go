package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vedran77/sortinghat/internal/domain"
	"github.com/vedran77/sortinghat/internal/llm"
	"github.com/vedran77/sortinghat/internal/service"
	"github.com/vedran77/sortinghat/internal/transport/http/middleware"
)

var houseChoicesMessage = "House must be one of " + strings.Join(domain.Houses, ", ")

type SortingHandler struct {
	sortingService *service.SortingService
	logger         *slog.Logger
}

func NewSortingHandler(sortingService *service.SortingService, logger *slog.Logger) *SortingHandler {
	return &SortingHandler{sortingService: sortingService, logger: logger}
}

type sortRequest struct {
	Answers json.RawMessage `json:"answers"`
}

type sortResponse struct {
	House       string `json:"house"`
	Explanation string `json:"explanation"`
	Message     string `json:"message"`
}

type sortEmailFailedResponse struct {
	Error         string `json:"error"`
	House         string `json:"house"`
	Explanation   string `json:"explanation"`
	HouseAssigned bool   `json:"houseAssigned"`
	EmailSent     bool   `json:"emailSent"`
}

// parseAnswers accepts only a JSON array of strings.
func parseAnswers(raw json.RawMessage) ([]string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, false
	}
	var answers []string
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, false
	}
	return answers, true
}

func (h *SortingHandler) Sort(w http.ResponseWriter, r *http.Request) {
	var req sortRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	answers, ok := parseAnswers(req.Answers)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	res, err := h.sortingService.Sort(r.Context(), middleware.GetUserID(r.Context()), answers)
	if err != nil {
		var emailErr *service.EmailError
		switch {
		case errors.Is(err, llm.ErrInvalidResponse):
			writeError(w, http.StatusBadRequest, "Invalid LLM response")
		case errors.Is(err, llm.ErrHouseNotString):
			writeError(w, http.StatusBadRequest, "House must be a string")
		case errors.Is(err, llm.ErrUnknownHouse):
			writeError(w, http.StatusBadRequest, houseChoicesMessage)
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		case errors.As(err, &emailErr):
			writeJSON(w, http.StatusInternalServerError, sortEmailFailedResponse{
				Error:         "House assigned but the welcome email could not be sent",
				House:         emailErr.Result.House,
				Explanation:   emailErr.Result.Explanation,
				HouseAssigned: true,
				EmailSent:     false,
			})
		default:
			writeInternal(w, r, h.logger, "sort", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, sortResponse{
		House:       res.House,
		Explanation: res.Explanation,
		Message:     "Sorting completed and email sent!",
	})
}

func (h *SortingHandler) ResendWelcome(w http.ResponseWriter, r *http.Request) {
	sent, err := h.sortingService.ResendWelcome(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoHouse):
			writeError(w, http.StatusBadRequest, "User has not been sorted yet")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		default:
			writeInternal(w, r, h.logger, "resend welcome email", err)
		}
		return
	}

	msg := "Welcome email already sent"
	if sent {
		msg = "Welcome email sent"
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}
