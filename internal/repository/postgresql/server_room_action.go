package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/serverroom"
	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type serverRoomActionRepository struct {
	db *database.DB
}

// Create implements serverroom.ServerRoomActionRepository.
func (r *serverRoomActionRepository) Create(ctx context.Context, action serverroom.Action) (serverroom.Action, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return serverroom.Action{}, fmt.Errorf("failed to generate server room action id: %w", err)
	}

	query := `
		INSERT INTO server_room_actions (id, employee_id, component, action)
		VALUES ($1, $2, $3, $4)
		RETURNING id, employee_id, component, action, created_at
	`

	var created serverroom.Action
	err = q.QueryRow(ctx, query, id.String(), action.EmployeeID, action.Component, action.Action).Scan(
		&created.ID, &created.EmployeeID, &created.Component, &created.Action, &created.CreatedAt,
	)
	if err != nil {
		if constraintViolation(err, pgForeignKeyViolation, "") {
			return serverroom.Action{}, serverroom.ErrEmployeeNotFound
		}
		return serverroom.Action{}, fmt.Errorf("failed to create server room action: %w", err)
	}

	return created, nil
}

// ListWithSessions implements serverroom.ServerRoomActionRepository.
func (r *serverRoomActionRepository) ListWithSessions(ctx context.Context, serverRoomLocation string) ([]serverroom.ActionWithSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.employee_id, s.component, s.action, s.created_at,
		       e.name, e.punch_card_id,
		       sess.check_in, sess.check_out
		FROM server_room_actions s
		JOIN employees e ON e.id = s.employee_id
		LEFT JOIN LATERAL (
			SELECT a.check_in, a.check_out
			FROM attendances a
			WHERE a.employee_id = s.employee_id
			  AND a.check_in_location = $1
			  AND a.check_in <= s.created_at
			ORDER BY a.check_in DESC
			LIMIT 1
		) sess ON TRUE
		ORDER BY s.created_at DESC, s.id DESC
	`

	rows, err := q.Query(ctx, query, serverRoomLocation)
	if err != nil {
		return nil, fmt.Errorf("failed to list server room actions: %w", err)
	}
	defer rows.Close()

	actions := make([]serverroom.ActionWithSession, 0)
	for rows.Next() {
		var a serverroom.ActionWithSession
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.Component, &a.Action.Action, &a.CreatedAt,
			&a.EmployeeName, &a.PunchCardID,
			&a.CheckIn, &a.CheckOut,
		); err != nil {
			return nil, fmt.Errorf("failed to scan server room action: %w", err)
		}
		actions = append(actions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate server room actions: %w", err)
	}

	return actions, nil
}

func NewServerRoomActionRepository(db *database.DB) serverroom.ServerRoomActionRepository {
	return &serverRoomActionRepository{db: db}
}
