package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"theater-backend/internal/models"
	"theater-backend/internal/repositories"
	"theater-backend/pkg/utils"
)

type ArchiveHandler struct {
	Repo *repositories.ArchiveRepository
}

func NewArchiveHandler(repo *repositories.ArchiveRepository) *ArchiveHandler {
	return &ArchiveHandler{Repo: repo}
}

func (h *ArchiveHandler) ListArchives(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	archives, err := h.Repo.List(r.Context(), limit, offset)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	if archives == nil {
		archives = []*models.ArchivedReservation{}
	}

	utils.JSON(w, http.StatusOK, archives)
}

func (h *ArchiveHandler) GetByReservation(w http.ResponseWriter, r *http.Request) {
	reservationID, err := strconv.Atoi(mux.Vars(r)["reservation_id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid reservation ID")
		return
	}

	archive, err := h.Repo.GetByReservationID(r.Context(), reservationID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Archive not found")
		return
	}

	utils.JSON(w, http.StatusOK, archive)
}
