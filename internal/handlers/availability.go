package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"office-hours-server/internal/scheduling"
	"office-hours-server/internal/utils"
)

// AvailabilityHandler serves professor availability windows.
type AvailabilityHandler struct {
	Engine *scheduling.Engine
	Logger *zap.Logger
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(engine *scheduling.Engine, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{Engine: engine, Logger: log}
}

// PublishAvailabilityRequest represents the request body for publishing a window.
type PublishAvailabilityRequest struct {
	Date      string `json:"date" binding:"required,calendardate"`
	StartTime string `json:"startTime" binding:"required,clock"`
	EndTime   string `json:"endTime" binding:"required,clock"`
}

// ListAvailabilityQuery narrows the availability listing.
type ListAvailabilityQuery struct {
	ProfessorID string `form:"professorId" binding:"omitempty,uuid"`
	Date        string `form:"date" binding:"omitempty,calendardate"`
	OpenOnly    bool   `form:"openOnly"`
}

// PublishAvailability godoc
// @Summary      Publish an availability window
// @Tags         professors
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      PublishAvailabilityRequest  true  "Window"
// @Success      201   {object}  utils.ResponseData{data=models.AvailabilityWindow}
// @Failure      400   {object}  utils.ResponseData
// @Failure      403   {object}  utils.ResponseData
// @Router       /professors/availability [post]
func (h *AvailabilityHandler) PublishAvailability(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req PublishAvailabilityRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	window, err := h.Engine.PublishAvailability(c.Request.Context(), p, scheduling.WindowRequest{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	utils.Created(c, "Availability added successfully", window)
}

// ListAvailability godoc
// @Summary      List availability windows
// @Description  With openOnly=true the windows are returned minus the time already booked.
// @Tags         students
// @Security     BearerAuth
// @Produce      json
// @Param        professorId  query     string  false  "Professor id"
// @Param        date         query     string  false  "YYYY-MM-DD"
// @Param        openOnly     query     bool    false  "Subtract booked time"
// @Success      200          {object}  utils.ResponseData{data=[]models.AvailabilityWindow}
// @Failure      400          {object}  utils.ResponseData
// @Router       /students/availability [get]
func (h *AvailabilityHandler) ListAvailability(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var q ListAvailabilityQuery
	if !utils.BindQueryAndValidate(c, &q) {
		return
	}
	query := scheduling.AvailabilityQuery{ProfessorID: q.ProfessorID, Date: q.Date}

	if q.OpenOnly {
		slots, err := h.Engine.ListOpenSlots(c.Request.Context(), p, query)
		if err != nil {
			respondError(c, h.Logger, err)
			return
		}
		utils.Success(c, "Open slots fetched successfully", slots)
		return
	}

	windows, err := h.Engine.ListAvailability(c.Request.Context(), p, query)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	utils.Success(c, "Availability fetched successfully", windows)
}
