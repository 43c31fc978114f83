package handlers

import (
	"github.com/geoads/backend/internal/http/dto"
	"github.com/geoads/backend/internal/middleware"
	"github.com/geoads/backend/internal/repositories"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserHandler struct {
	userRepo *repositories.UserRepo
	log      *zap.Logger
}

func NewUserHandler(userRepo *repositories.UserRepo, log *zap.Logger) *UserHandler {
	return &UserHandler{userRepo: userRepo, log: log}
}

func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	user, err := h.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "user not found"})
	}
	_ = h.userRepo.TouchLastActive(c.Context(), userID)
	return c.JSON(dto.SuccessResponse{OK: true, Data: user})
}
