package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vedran77/sortinghat/internal/catalog"
	"github.com/vedran77/sortinghat/internal/service"
)

type CharacterHandler struct {
	characterService *service.CharacterService
	logger           *slog.Logger
}

func NewCharacterHandler(characterService *service.CharacterService, logger *slog.Logger) *CharacterHandler {
	return &CharacterHandler{characterService: characterService, logger: logger}
}

type pageResponse struct {
	Message string `json:"message"`
	catalog.Page
}

func (h *CharacterHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.characterService.List(r.Context(), catalog.QueryFromValues(r.URL.Query()))
	if err != nil {
		writeInternal(w, r, h.logger, "list characters", err)
		return
	}

	writeJSON(w, http.StatusOK, pageResponse{Message: "Data retrieved successfully", Page: page})
}

func (h *CharacterHandler) Detail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.characterService.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrCharacterNotFound) {
			writeError(w, http.StatusNotFound, "Character not found")
		} else {
			writeInternal(w, r, h.logger, "character detail", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Character detail retrieved successfully", Data: detail})
}
