package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"theater-backend/internal/metrics"
	"theater-backend/internal/models"
	"theater-backend/internal/repositories"
)

type AuditService struct {
	Repo *repositories.AuditLogRepository
}

func NewAuditService(repo *repositories.AuditLogRepository) *AuditService {
	return &AuditService{Repo: repo}
}

// Record appends an audit entry. Audit failures are logged but never fail
// the business operation they describe.
func (s *AuditService) Record(ctx context.Context, actor, action, entityType string, entityID int, detail string) {
	entry := &models.AuditLogEntry{
		Actor:      actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	}
	if err := s.Repo.Create(ctx, entry); err != nil {
		log.Printf("[Audit] failed to record %s on %s/%d: %v", action, entityType, entityID, err)
	}
}

// RecordChanges appends an audit entry carrying field-level before/after
// pairs, used for reservation edits.
func (s *AuditService) RecordChanges(ctx context.Context, actor, action, entityType string, entityID int, changes []models.FieldChange) {
	if len(changes) == 0 {
		return
	}
	entry := &models.AuditLogEntry{
		Actor:      actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Changes:    changes,
	}
	if err := s.Repo.Create(ctx, entry); err != nil {
		log.Printf("[Audit] failed to record %s on %s/%d: %v", action, entityType, entityID, err)
	}
}

func (s *AuditService) List(ctx context.Context, filter models.AuditLogFilter) ([]*models.AuditLogEntry, error) {
	return s.Repo.List(ctx, filter)
}

// ExportJSON dumps matching entries with full fidelity.
func (s *AuditService) ExportJSON(ctx context.Context, filter models.AuditLogFilter) ([]byte, error) {
	entries, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	metrics.ExportsGenerated.WithLabelValues("json").Inc()
	return json.MarshalIndent(entries, "", "  ")
}

// ExportCSV dumps matching entries flattened, one row per entry with the
// changes serialized into a single column.
func (s *AuditService) ExportCSV(ctx context.Context, filter models.AuditLogFilter, out *csv.Writer) error {
	entries, err := s.Repo.List(ctx, filter)
	if err != nil {
		return err
	}

	header := []string{"id", "created_at", "actor", "action", "entity_type", "entity_id", "detail", "changes"}
	if err := out.Write(header); err != nil {
		return err
	}

	for _, e := range entries {
		changes := ""
		for i, c := range e.Changes {
			if i > 0 {
				changes += "; "
			}
			changes += fmt.Sprintf("%s: %q -> %q", c.Field, c.OldValue, c.NewValue)
		}
		row := []string{
			strconv.Itoa(e.ID),
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			e.Actor,
			e.Action,
			e.EntityType,
			strconv.Itoa(e.EntityID),
			e.Detail,
			changes,
		}
		if err := out.Write(row); err != nil {
			return err
		}
	}

	out.Flush()
	metrics.ExportsGenerated.WithLabelValues("csv").Inc()
	return out.Error()
}
