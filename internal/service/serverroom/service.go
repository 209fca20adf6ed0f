package serverroom

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/serverroom"
	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/export"
)

const (
	exportFilename = "server-room-actions.xlsx"
	exportSheet    = "Server Room Actions"
	timeLayout     = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
)

var exportHeader = []string{"Employee Name", "Punch Card ID", "Component", "Action", "Date", "Check-In Time", "Check-Out Time"}

type ServerRoomServiceImpl struct {
	serverroom.ServerRoomActionRepository
	employee.EmployeeRepository
	serverRoomLocation string
	loc                *time.Location
}

func NewServerRoomService(actionRepo serverroom.ServerRoomActionRepository, employeeRepo employee.EmployeeRepository, serverRoomLocation string, loc *time.Location) serverroom.ServerRoomService {
	if loc == nil {
		loc = time.UTC
	}
	return &ServerRoomServiceImpl{
		ServerRoomActionRepository: actionRepo,
		EmployeeRepository:         employeeRepo,
		serverRoomLocation:         serverRoomLocation,
		loc:                        loc,
	}
}

// RecordAction implements serverroom.ServerRoomService.
func (s *ServerRoomServiceImpl) RecordAction(ctx context.Context, req serverroom.RecordActionRequest) (serverroom.ActionResponse, error) {
	req.PunchCardID = strings.TrimSpace(req.PunchCardID)
	req.Component = strings.TrimSpace(req.Component)
	req.Action = strings.TrimSpace(req.Action)
	if err := req.Validate(); err != nil {
		return serverroom.ActionResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByPunchCardID(ctx, req.PunchCardID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return serverroom.ActionResponse{}, serverroom.ErrEmployeeNotFound
		}
		return serverroom.ActionResponse{}, fmt.Errorf("failed to resolve punch card: %w", err)
	}

	created, err := s.ServerRoomActionRepository.Create(ctx, serverroom.Action{
		EmployeeID: emp.ID,
		Component:  req.Component,
		Action:     req.Action,
	})
	if err != nil {
		return serverroom.ActionResponse{}, err
	}

	slog.Info("server room action recorded", "action_id", created.ID, "employee_id", emp.ID, "component", created.Component)

	return serverroom.ToResponse(created), nil
}

// ListActions implements serverroom.ServerRoomService.
func (s *ServerRoomServiceImpl) ListActions(ctx context.Context) ([]serverroom.ActionWithSessionResponse, error) {
	rows, err := s.ServerRoomActionRepository.ListWithSessions(ctx, s.serverRoomLocation)
	if err != nil {
		return nil, err
	}

	resp := make([]serverroom.ActionWithSessionResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, serverroom.ActionWithSessionResponse{
			ActionResponse: serverroom.ToResponse(row.Action),
			EmployeeName:   row.EmployeeName,
			PunchCardID:    row.PunchCardID,
			CheckIn:        row.CheckIn,
			CheckOut:       row.CheckOut,
		})
	}
	return resp, nil
}

// ExportActions implements serverroom.ServerRoomService.
func (s *ServerRoomServiceImpl) ExportActions(ctx context.Context) (export.File, error) {
	rows, err := s.ServerRoomActionRepository.ListWithSessions(ctx, s.serverRoomLocation)
	if err != nil {
		return export.File{}, err
	}

	table := export.Table{
		Sheet:  exportSheet,
		Header: exportHeader,
		Rows:   make([][]any, 0, len(rows)),
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, []any{
			row.EmployeeName,
			row.PunchCardID,
			row.Component,
			row.Action.Action,
			row.CreatedAt.In(s.loc).Format(dateLayout),
			s.formatTime(row.CheckIn),
			s.formatTime(row.CheckOut),
		})
	}

	return export.XLSX(exportFilename, table)
}

func (s *ServerRoomServiceImpl) formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.In(s.loc).Format(timeLayout)
}
