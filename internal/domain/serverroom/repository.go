package serverroom

import "context"

type ServerRoomActionRepository interface {
	Create(ctx context.Context, action Action) (Action, error)
	// ListWithSessions returns actions newest first, each correlated with the
	// session whose check-in location equals serverRoomLocation.
	ListWithSessions(ctx context.Context, serverRoomLocation string) ([]ActionWithSession, error)
}
