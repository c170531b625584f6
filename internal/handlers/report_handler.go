package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"theater-backend/internal/models"
	"theater-backend/internal/services"
	"theater-backend/internal/storage"
	"theater-backend/internal/timeutil"
)

type ReportHandler struct {
	Service      *services.ReportService
	ExcelService *services.ExcelService
	Uploader     *storage.Uploader
}

func NewReportHandler(service *services.ReportService, excelService *services.ExcelService, uploader *storage.Uploader) *ReportHandler {
	return &ReportHandler{Service: service, ExcelService: excelService, Uploader: uploader}
}

// GetEventPDF serves the guest list for one event.
func (h *ReportHandler) GetEventPDF(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid event ID", http.StatusBadRequest)
		return
	}

	data, err := h.Service.GetEventReportData(r.Context(), eventID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	pdfData, err := h.Service.GenerateEventPDF(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=guestlist_%s.pdf", data.Event.Date.Format(timeutil.DateLayout)))
	w.Write(pdfData)
}

func (h *ReportHandler) GetEventCSV(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid event ID", http.StatusBadRequest)
		return
	}

	csvData, err := h.Service.GenerateEventCSV(r.Context(), eventID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=guestlist_event_%d.csv", eventID))
	w.Write(csvData)
}

// GetInvoicePDF serves the confirmation/invoice for one reservation.
func (h *ReportHandler) GetInvoicePDF(w http.ResponseWriter, r *http.Request) {
	reservationID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}

	data, err := h.Service.GetInvoiceData(r.Context(), reservationID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	pdfData, err := h.Service.GenerateInvoicePDF(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=invoice_%s.pdf", data.Reservation.PublicID))
	w.Write(pdfData)
}

// GetBulkInvoiceZip serves a ZIP of every invoice on an event.
func (h *ReportHandler) GetBulkInvoiceZip(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid event ID", http.StatusBadRequest)
		return
	}

	pdfs, err := h.Service.GenerateBulkInvoicePDFs(r.Context(), eventID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(pdfs) == 0 {
		http.Error(w, "No reservations on this event", http.StatusNotFound)
		return
	}

	zipData, err := h.Service.CreateBulkPDFZip(pdfs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=invoices_event_%d.zip", eventID))
	w.Write(zipData)
}

// UploadBulkInvoiceZip generates the invoice bundle for an event and
// pushes it to object storage instead of streaming it back.
func (h *ReportHandler) UploadBulkInvoiceZip(w http.ResponseWriter, r *http.Request) {
	if h.Uploader == nil {
		http.Error(w, "Object storage not configured", http.StatusServiceUnavailable)
		return
	}

	eventID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid event ID", http.StatusBadRequest)
		return
	}

	pdfs, err := h.Service.GenerateBulkInvoicePDFs(r.Context(), eventID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(pdfs) == 0 {
		http.Error(w, "No reservations on this event", http.StatusNotFound)
		return
	}

	zipData, err := h.Service.CreateBulkPDFZip(pdfs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	key, err := h.Uploader.Upload(r.Context(),
		fmt.Sprintf("invoices_event_%d.zip", eventID), "application/zip", zipData)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"key":      key,
		"invoices": len(pdfs),
	})
}

// ListStoredExports lists previously uploaded export artifacts.
func (h *ReportHandler) ListStoredExports(w http.ResponseWriter, r *http.Request) {
	if h.Uploader == nil {
		http.Error(w, "Object storage not configured", http.StatusServiceUnavailable)
		return
	}

	objects, err := h.Uploader.ListExports(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(objects)
}

// GetPaymentsCSV exports payments between two dates.
func (h *ReportHandler) GetPaymentsCSV(w http.ResponseWriter, r *http.Request) {
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		http.Error(w, "from and to query parameters are required", http.StatusBadRequest)
		return
	}

	from, err := timeutil.ParseInVenue(timeutil.DateLayout, fromStr)
	if err != nil {
		http.Error(w, "Invalid from date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	to, err := timeutil.ParseInVenue(timeutil.DateLayout, toStr)
	if err != nil {
		http.Error(w, "Invalid to date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	// Inclusive end date
	to = to.AddDate(0, 0, 1)

	csvData, err := h.Service.GeneratePaymentsCSV(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=payments_%s_%s.csv", fromStr, toStr))
	w.Write(csvData)
}

// GetReservationsExcel serves the multi-sheet workbook export. The same query
// filters as the reservation list apply.
func (h *ReportHandler) GetReservationsExcel(w http.ResponseWriter, r *http.Request) {
	filter := models.ReservationFilter{
		Search: r.URL.Query().Get("search"),
		Tag:    r.URL.Query().Get("tag"),
	}
	if v := r.URL.Query().Get("event_id"); v != "" {
		filter.EventID, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = models.ReservationStatus(v)
	}
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := timeutil.ParseInVenue(timeutil.DateLayout, v)
		if err != nil {
			http.Error(w, "Invalid from date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		filter.DateFrom = &t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := timeutil.ParseInVenue(timeutil.DateLayout, v)
		if err != nil {
			http.Error(w, "Invalid to date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		filter.DateTo = &t
	}

	data, err := h.ExcelService.ExportReservations(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=reservations_%s.xlsx", timeutil.Now().Format(timeutil.DateLayout)))
	w.Write(data)
}
