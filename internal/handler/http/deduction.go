package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/staffsync/attendance-backend-go/internal/domain/deduction"
	"github.com/staffsync/attendance-backend-go/internal/handler/http/response"
)

type DeductionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type deductionHandlerImpl struct {
	deductionService deduction.Service
}

func NewDeductionHandler(svc deduction.Service) DeductionHandler {
	return &deductionHandlerImpl{deductionService: svc}
}

func (h *deductionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req deduction.CreateDeductionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	d, err := h.deductionService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Deduction recorded", d)
}

func (h *deductionHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req deduction.UpdateDeductionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	d, err := h.deductionService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Deduction updated", d)
}

func (h *deductionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := deduction.Filter{EmployeeID: r.URL.Query().Get("employee_id")}

	deductions, err := h.deductionService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, deductions)
}

func (h *deductionHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.deductionService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Deduction deleted", nil)
}
