package handler

import (
	"net/http"

	"doctor-portal/internal/delivery/dto"
	"doctor-portal/internal/usecase"
	"doctor-portal/pkg/response"
)

type SuggestionHandler struct {
	suggestionUsecase usecase.SuggestionUsecase
}

func NewSuggestionHandler(suggestionUsecase usecase.SuggestionUsecase) *SuggestionHandler {
	return &SuggestionHandler{
		suggestionUsecase: suggestionUsecase,
	}
}

func (h *SuggestionHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req dto.SuggestionRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	suggestion, err := h.suggestionUsecase.Suggest(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to get prescription suggestion")
		return
	}

	response.JSON(w, http.StatusOK, suggestion)
}
