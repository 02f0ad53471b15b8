package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"office-hours-server/internal/scheduling"
	"office-hours-server/internal/utils"
)

// AppointmentHandler handles appointment-related requests.
type AppointmentHandler struct {
	Engine *scheduling.Engine
	Logger *zap.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(engine *scheduling.Engine, log *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{Engine: engine, Logger: log}
}

// CreateAppointmentRequest represents the request body for booking an appointment.
type CreateAppointmentRequest struct {
	ProfessorID string `json:"professorId" binding:"required,uuid"`
	Date        string `json:"date" binding:"required,calendardate"`
	StartTime   string `json:"startTime" binding:"required,clock"`
	EndTime     string `json:"endTime" binding:"required,clock"`
}

// ListAppointmentsQuery filters appointment listings by status.
type ListAppointmentsQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=active cancelled"`
}

// CreateAppointment godoc
// @Summary      Book an appointment
// @Tags         students
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      CreateAppointmentRequest  true  "Slot"
// @Success      201   {object}  utils.ResponseData{data=models.Appointment}
// @Failure      400   {object}  utils.ResponseData
// @Failure      403   {object}  utils.ResponseData
// @Failure      409   {object}  utils.ResponseData
// @Failure      422   {object}  utils.ResponseData
// @Router       /students/appointments [post]
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appt, err := h.Engine.BookAppointment(c.Request.Context(), p, scheduling.BookingRequest{
		ProfessorID: req.ProfessorID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	utils.Created(c, "Appointment booked successfully", appt)
}

// GetMyAppointments godoc
// @Summary      List the caller's appointments
// @Tags         students
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "active or cancelled"
// @Success      200     {object}  utils.ResponseData{data=[]models.Appointment}
// @Router       /students/appointments [get]
func (h *AppointmentHandler) GetMyAppointments(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var q ListAppointmentsQuery
	if !utils.BindQueryAndValidate(c, &q) {
		return
	}

	appts, err := h.Engine.ListMyAppointments(c.Request.Context(), p, q.Status)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	utils.Success(c, "Appointments fetched successfully", appts)
}

// GetProfessorAppointments godoc
// @Summary      List appointments booked with the calling professor
// @Tags         professors
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "active or cancelled"
// @Success      200     {object}  utils.ResponseData{data=[]models.Appointment}
// @Router       /professors/appointments [get]
func (h *AppointmentHandler) GetProfessorAppointments(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var q ListAppointmentsQuery
	if !utils.BindQueryAndValidate(c, &q) {
		return
	}

	appts, err := h.Engine.ListProfessorAppointments(c.Request.Context(), p, q.Status)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	utils.Success(c, "Appointments fetched successfully", appts)
}

// CancelAppointment godoc
// @Summary      Cancel an appointment
// @Tags         professors
// @Security     BearerAuth
// @Produce      json
// @Param        appointmentId  path      string  true  "Appointment id"
// @Success      200            {object}  utils.ResponseData{data=models.Appointment}
// @Failure      400            {object}  utils.ResponseData
// @Failure      404            {object}  utils.ResponseData
// @Router       /professors/availability/{appointmentId} [delete]
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	appt, err := h.Engine.CancelAppointment(c.Request.Context(), p, c.Param("appointmentId"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	utils.Success(c, "Appointment cancelled successfully", appt)
}
