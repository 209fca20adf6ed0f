package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/serverroom"
	"github.com/cmlabs-hris/empatt-backend-go/internal/handler/http/response"
)

type ServerRoomHandler interface {
	RecordAction(w http.ResponseWriter, r *http.Request)
	ListActions(w http.ResponseWriter, r *http.Request)
	ExportActions(w http.ResponseWriter, r *http.Request)
}

type serverRoomHandlerImpl struct {
	serverRoomService serverroom.ServerRoomService
}

func NewServerRoomHandler(serverRoomService serverroom.ServerRoomService) ServerRoomHandler {
	return &serverRoomHandlerImpl{
		serverRoomService: serverRoomService,
	}
}

// RecordAction implements ServerRoomHandler.
func (h *serverRoomHandlerImpl) RecordAction(w http.ResponseWriter, r *http.Request) {
	var req serverroom.RecordActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode server room action request", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.serverRoomService.RecordAction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Action recorded", result)
}

// ListActions implements ServerRoomHandler.
func (h *serverRoomHandlerImpl) ListActions(w http.ResponseWriter, r *http.Request) {
	result, err := h.serverRoomService.ListActions(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportActions implements ServerRoomHandler.
func (h *serverRoomHandlerImpl) ExportActions(w http.ResponseWriter, r *http.Request) {
	file, err := h.serverRoomService.ExportActions(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file)
}
