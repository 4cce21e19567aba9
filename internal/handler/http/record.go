package http

import (
	"encoding/json"
	"net/http"

	"github.com/makarovdm/go-sync-suite/internal/logger"
	"github.com/makarovdm/go-sync-suite/internal/utils"
	"github.com/makarovdm/go-sync-suite/models"
)

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	record, err := h.services.RecordService.GetRecord(ctx, userID)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("record fetch failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.RecordResponse{
		Record:    record.Namespaces,
		UpdatedAt: record.UpdatedAt,
	}, http.StatusOK)
}

func (h *Handler) putRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.PutRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	record, err := h.services.RecordService.UpsertRecord(ctx, userID, req)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("record upsert failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.RecordResponse{
		Record:    record.Namespaces,
		UpdatedAt: record.UpdatedAt,
	}, http.StatusOK)
}
