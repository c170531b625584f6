package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"theater-backend/internal/finance"
	"theater-backend/internal/metrics"
	"theater-backend/internal/models"
	"theater-backend/internal/repositories"
	"theater-backend/internal/timeutil"
)

// ExcelService builds multi-sheet workbook exports for the back office.
type ExcelService struct {
	ReservationRepo *repositories.ReservationRepository
	EventRepo       *repositories.EventRepository
	ShowRepo        *repositories.ShowRepository
	PaymentRepo     *repositories.PaymentRepository
}

func NewExcelService(
	reservationRepo *repositories.ReservationRepository,
	eventRepo *repositories.EventRepository,
	showRepo *repositories.ShowRepository,
	paymentRepo *repositories.PaymentRepository,
) *ExcelService {
	return &ExcelService{
		ReservationRepo: reservationRepo,
		EventRepo:       eventRepo,
		ShowRepo:        showRepo,
		PaymentRepo:     paymentRepo,
	}
}

// ExportReservations builds a workbook with the filtered reservations, a
// summary sheet and a per-package breakdown.
func (s *ExcelService) ExportReservations(ctx context.Context, filter models.ReservationFilter) ([]byte, error) {
	reservations, err := s.ReservationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := s.writeReservationsSheet(f, reservations); err != nil {
		return nil, err
	}
	if err := s.writeSummarySheet(ctx, f, reservations); err != nil {
		return nil, err
	}
	if err := s.writeArrangementSheet(f, reservations); err != nil {
		return nil, err
	}

	// The default sheet excelize creates is not used
	f.DeleteSheet("Sheet1")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	metrics.ExportsGenerated.WithLabelValues("xlsx").Inc()
	return buf.Bytes(), nil
}

func (s *ExcelService) writeReservationsSheet(f *excelize.File, reservations []*models.Reservation) error {
	const sheet = "Reservations"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{
		"ID", "Reference", "Event Date", "Status", "Contact", "Company", "Email", "Phone",
		"Persons", "Package", "Pre-drinks", "After party", "Dietary", "Celebration",
		"Total Price", "Due Date", "Tags", "Created",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
	})
	if err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
		f.SetCellStyle(sheet, "A1", endCell, headerStyle)
	}

	for i, r := range reservations {
		row := i + 2
		dueDate := ""
		if r.PaymentDueDate != nil {
			dueDate = r.PaymentDueDate.Format(timeutil.DateLayout)
		}
		tags := ""
		for j, t := range r.Tags {
			if j > 0 {
				tags += ", "
			}
			tags += t
		}

		values := []any{
			r.ID,
			r.PublicID,
			r.EventDate.Format(timeutil.DateLayout),
			string(r.Status),
			r.ContactPerson,
			r.CompanyName,
			r.Email,
			r.Phone,
			r.NumberOfPersons,
			string(r.Arrangement),
			r.PreDrinkCount,
			r.AfterPartyCount,
			r.DietaryNotes,
			r.CelebrationNote,
			r.TotalPrice,
			dueDate,
			tags,
			timeutil.ToVenue(r.CreatedAt).Format(timeutil.DateTimeLayout),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	f.SetColWidth(sheet, "E", "G", 24)
	return nil
}

func (s *ExcelService) writeSummarySheet(ctx context.Context, f *excelize.File, reservations []*models.Reservation) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	statusCounts := make(map[models.ReservationStatus]int)
	statusPersons := make(map[models.ReservationStatus]int)
	var totalValue, totalPaid, totalOutstanding float64

	for _, r := range reservations {
		statusCounts[r.Status]++
		statusPersons[r.Status] += r.NumberOfPersons
		totalValue += r.TotalPrice

		payments, err := s.PaymentRepo.ListPaymentsByReservation(ctx, r.ID)
		if err != nil {
			continue
		}
		refunds, err := s.PaymentRepo.ListRefundsByReservation(ctx, r.ID)
		if err != nil {
			continue
		}
		summary := finance.Summarize(r.TotalPrice, payments, refunds)
		totalPaid += summary.TotalPaid
		totalOutstanding += summary.AmountDue
	}

	f.SetCellValue(sheet, "A1", "Export Summary")
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Generated %s", timeutil.Now().Format(timeutil.DisplayLayout)))

	f.SetCellValue(sheet, "A4", "Status")
	f.SetCellValue(sheet, "B4", "Reservations")
	f.SetCellValue(sheet, "C4", "Persons")

	row := 5
	for _, status := range []models.ReservationStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusCheckedIn,
		models.StatusOption, models.StatusRequest, models.StatusRejected, models.StatusCancelled,
	} {
		if statusCounts[status] == 0 {
			continue
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), string(status))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), statusCounts[status])
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), statusPersons[status])
		row++
	}

	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total value")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), totalValue)
	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total paid")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), totalPaid)
	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Outstanding")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), totalOutstanding)

	f.SetColWidth(sheet, "A", "A", 20)
	return nil
}

func (s *ExcelService) writeArrangementSheet(f *excelize.File, reservations []*models.Reservation) error {
	const sheet = "By Package"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	type bucket struct {
		count   int
		persons int
		value   float64
	}
	buckets := make(map[models.Arrangement]*bucket)

	for _, r := range reservations {
		b, ok := buckets[r.Arrangement]
		if !ok {
			b = &bucket{}
			buckets[r.Arrangement] = b
		}
		b.count++
		b.persons += r.NumberOfPersons
		b.value += r.TotalPrice
	}

	f.SetCellValue(sheet, "A1", "Package")
	f.SetCellValue(sheet, "B1", "Reservations")
	f.SetCellValue(sheet, "C1", "Persons")
	f.SetCellValue(sheet, "D1", "Value")

	row := 2
	for _, arr := range []models.Arrangement{models.ArrangementBWF, models.ArrangementBWFM} {
		b, ok := buckets[arr]
		if !ok {
			continue
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), string(arr))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), b.count)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), b.persons)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), b.value)
		row++
	}

	return nil
}
