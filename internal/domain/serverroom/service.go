package serverroom

import (
	"context"

	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/export"
)

type ServerRoomService interface {
	RecordAction(ctx context.Context, req RecordActionRequest) (ActionResponse, error)
	ListActions(ctx context.Context) ([]ActionWithSessionResponse, error)
	ExportActions(ctx context.Context) (export.File, error)
}
