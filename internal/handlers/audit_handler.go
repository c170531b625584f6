package handlers

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"theater-backend/internal/models"
	"theater-backend/internal/services"
	"theater-backend/internal/timeutil"
	"theater-backend/pkg/utils"
)

type AuditHandler struct {
	Service *services.AuditService
}

func NewAuditHandler(service *services.AuditService) *AuditHandler {
	return &AuditHandler{Service: service}
}

func auditFilterFromQuery(r *http.Request) (models.AuditLogFilter, error) {
	filter := models.AuditLogFilter{
		Actor:      r.URL.Query().Get("actor"),
		Action:     r.URL.Query().Get("action"),
		EntityType: r.URL.Query().Get("entity_type"),
	}
	if v := r.URL.Query().Get("entity_id"); v != "" {
		filter.EntityID, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := timeutil.ParseInVenue(timeutil.DateLayout, v)
		if err != nil {
			return filter, err
		}
		filter.DateFrom = &t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := timeutil.ParseInVenue(timeutil.DateLayout, v)
		if err != nil {
			return filter, err
		}
		filter.DateTo = &t
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		filter.Offset, _ = strconv.Atoi(v)
	}
	return filter, nil
}

func (h *AuditHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	filter, err := auditFilterFromQuery(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid date filter, expected YYYY-MM-DD")
		return
	}

	entries, err := h.Service.List(r.Context(), filter)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	if entries == nil {
		entries = []*models.AuditLogEntry{}
	}

	utils.JSON(w, http.StatusOK, entries)
}

func (h *AuditHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	filter, err := auditFilterFromQuery(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid date filter, expected YYYY-MM-DD")
		return
	}

	data, err := h.Service.ExportJSON(r.Context(), filter)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=audit_log.json")
	w.Write(data)
}

func (h *AuditHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := auditFilterFromQuery(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid date filter, expected YYYY-MM-DD")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=audit_log.csv")

	if err := h.Service.ExportCSV(r.Context(), filter, csv.NewWriter(w)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
