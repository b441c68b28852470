package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vedran77/sortinghat/internal/service"
	"github.com/vedran77/sortinghat/internal/transport/http/middleware"
)

type FavoriteHandler struct {
	favoriteService *service.FavoriteService
	logger          *slog.Logger
}

func NewFavoriteHandler(favoriteService *service.FavoriteService, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService, logger: logger}
}

func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	fav, err := h.favoriteService.Add(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCharacterNotFound):
			writeError(w, http.StatusNotFound, "Character not found")
		case errors.Is(err, service.ErrAlreadyFavorite):
			writeError(w, http.StatusConflict, "Character is already in favorites")
		default:
			writeInternal(w, r, h.logger, "add favorite", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "Favorite character added successfully", Data: fav})
}

func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	err := h.favoriteService.Remove(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrFavoriteNotFound) {
			writeError(w, http.StatusNotFound, "Favorite character not found")
		} else {
			writeInternal(w, r, h.logger, "remove favorite", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Favorite character removed successfully"})
}

func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	favs, err := h.favoriteService.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeInternal(w, r, h.logger, "list favorites", err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Favorites retrieved successfully", Data: favs})
}
