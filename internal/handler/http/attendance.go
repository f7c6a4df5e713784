package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/campuseats/payroll-backend-go/internal/domain/attendance"
	"github.com/campuseats/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Log(w http.ResponseWriter, r *http.Request)
	LogBulk(w http.ResponseWriter, r *http.Request)
	GetByStaff(w http.ResponseWriter, r *http.Request)
	GetByCanteen(w http.ResponseWriter, r *http.Request)
	GetByCanteenAndDate(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *attendanceHandlerImpl) Log(w http.ResponseWriter, r *http.Request) {
	var req attendance.LogAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.Log(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance recorded", result)
}

func (h *attendanceHandlerImpl) LogBulk(w http.ResponseWriter, r *http.Request) {
	var req attendance.BulkLogAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.LogBulk(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance recorded", result)
}

func (h *attendanceHandlerImpl) GetByStaff(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staffId")

	from, to, ok := dateRangeParams(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.GetByStaff(r.Context(), staffID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) GetByCanteen(w http.ResponseWriter, r *http.Request) {
	canteenID := chi.URLParam(r, "canteenId")

	from, to, ok := dateRangeParams(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.GetByCanteen(r.Context(), canteenID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) GetByCanteenAndDate(w http.ResponseWriter, r *http.Request) {
	canteenID := chi.URLParam(r, "canteenId")

	date, err := time.Parse("2006-01-02", chi.URLParam(r, "date"))
	if err != nil {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	result, err := h.attendanceService.GetByCanteenAndDate(r.Context(), canteenID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// dateRangeParams reads the from/to query parameters. On failure it writes
// the error response itself and reports ok=false.
func dateRangeParams(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		response.BadRequest(w, "from must be in YYYY-MM-DD format", nil)
		return time.Time{}, time.Time{}, false
	}

	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		response.BadRequest(w, "to must be in YYYY-MM-DD format", nil)
		return time.Time{}, time.Time{}, false
	}

	if to.Before(from) {
		response.BadRequest(w, "to must not be before from", nil)
		return time.Time{}, time.Time{}, false
	}

	return from, to, true
}
