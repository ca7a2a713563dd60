package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-directory/internal/config"
	"github.com/spec-kit/employee-directory/internal/events"
)

// EventRecorder counts handled events.
type EventRecorder interface {
	RecordEvent(eventType string)
}

// AuditService writes an audit trail of employee changes to the log.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.AuditConfig
	recorder   EventRecorder
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.AuditConfig, recorder EventRecorder) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
		cfg:        cfg,
		recorder:   recorder,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil || !a.cfg.Enabled {
		return
	}
	a.dispatcher.Subscribe(events.EventEmployeeAdded, a.handleEmployeeAdded)
	a.dispatcher.Subscribe(events.EventEmployeeUpdated, a.handleEmployeeUpdated)
	a.dispatcher.Subscribe(events.EventEmployeeDeleted, a.handleEmployeeDeleted)
}

func (a *AuditService) handleEmployeeAdded(ctx context.Context, event events.Event) error {
	fields := a.baseFields(event)
	if p, ok := event.Payload.(events.EmployeeAddedPayload); ok {
		fields = append(fields,
			zap.String("department", p.Employee.Department),
			zap.String("position", p.Employee.Position))
	}
	a.logger.Info("EmployeeAdded", fields...)
	a.count(event)
	return nil
}

func (a *AuditService) handleEmployeeUpdated(ctx context.Context, event events.Event) error {
	fields := a.baseFields(event)
	if p, ok := event.Payload.(events.EmployeeUpdatedPayload); ok {
		changed := make([]string, 0, len(p.ChangedFields))
		for _, f := range p.ChangedFields {
			changed = append(changed, string(f))
		}
		fields = append(fields, zap.Strings("changed_fields", changed))
	}
	a.logger.Info("EmployeeUpdated", fields...)
	a.count(event)
	return nil
}

func (a *AuditService) handleEmployeeDeleted(ctx context.Context, event events.Event) error {
	a.logger.Info("EmployeeDeleted", a.baseFields(event)...)
	a.count(event)
	return nil
}

func (a *AuditService) baseFields(event events.Event) []zap.Field {
	return []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("session_id", event.SessionID),
		zap.Int("employee_id", event.EmployeeID),
		zap.Time("at", event.Timestamp),
	}
}

func (a *AuditService) count(event events.Event) {
	if a.recorder != nil {
		a.recorder.RecordEvent(string(event.Type))
	}
}
