package http

import (
	"net/http"

	"github.com/staffsync/attendance-backend-go/internal/handler/http/response"
	syncService "github.com/staffsync/attendance-backend-go/internal/service/sync"
)

type SyncHandler interface {
	Status(w http.ResponseWriter, r *http.Request)
	Drain(w http.ResponseWriter, r *http.Request)
	FullSync(w http.ResponseWriter, r *http.Request)
	Restore(w http.ResponseWriter, r *http.Request)
}

type syncHandlerImpl struct {
	engine *syncService.Engine
}

func NewSyncHandler(engine *syncService.Engine) SyncHandler {
	return &syncHandlerImpl{engine: engine}
}

func (h *syncHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.engine.Status())
}

func (h *syncHandlerImpl) Drain(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Drain(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, h.engine.Status())
}

func (h *syncHandlerImpl) FullSync(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.FullSync(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Full sync completed", h.engine.Status())
}

func (h *syncHandlerImpl) Restore(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Restore(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Local state restored from remote", nil)
}
