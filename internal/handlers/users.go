package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"office-hours-server/internal/models"
	"office-hours-server/internal/store"
	"office-hours-server/internal/utils"
)

// UserHandler serves the user directory.
type UserHandler struct {
	Accounts store.Accounts
	Logger   *zap.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(accounts store.Accounts, log *zap.Logger) *UserHandler {
	return &UserHandler{Accounts: accounts, Logger: log}
}

// GetProfessors godoc
// @Summary      List professors
// @Tags         professors
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  utils.ResponseData{data=[]models.UserSanitized}
// @Router       /professors [get]
func (h *UserHandler) GetProfessors(c *gin.Context) {
	professors, err := h.Accounts.ListUsers(c.Request.Context(), models.RoleProfessor)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	sanitized := make([]models.UserSanitized, len(professors))
	for i, professor := range professors {
		sanitized[i] = professor.Sanitize()
	}

	utils.Success(c, "Professors fetched successfully", sanitized)
}
