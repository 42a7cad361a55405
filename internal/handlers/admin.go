package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/rentnest/rentnest/internal/events"
	"github.com/rentnest/rentnest/internal/httpapi"
	"github.com/rentnest/rentnest/internal/models"
)

type AdminHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
}

func (h *AdminHandler) GetAllUsers(c echo.Context) error {
	var users []models.User
	if err := h.DB.Find(&users).Error; err != nil {
		return httpapi.Internal(c, err)
	}
	return httpapi.OK(c, users)
}

// HandleStatus flips the approval flag on an owner account. This is the
// admin action that unlocks owner login.
func (h *AdminHandler) HandleStatus(c echo.Context) error {
	var req struct {
		UserID  string `json:"user_id"`
		Granted bool   `json:"granted"`
	}

	if err := c.Bind(&req); err != nil {
		return httpapi.Fail(c, http.StatusBadRequest, httpapi.CodeValidation, err.Error())
	}

	var user models.User
	if err := h.DB.Where("id = ?", req.UserID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpapi.Fail(c, http.StatusNotFound, httpapi.CodeNotFound, "User not found")
		}
		return httpapi.Internal(c, err)
	}

	if user.Role != models.RoleOwner {
		return httpapi.Fail(c, http.StatusBadRequest, httpapi.CodeValidation, "approval only applies to owner accounts")
	}

	user.Granted = req.Granted
	if err := h.DB.Save(&user).Error; err != nil {
		return httpapi.Internal(c, err)
	}

	publish(c, h.Producer, events.TopicUserEvents, user.ID, map[string]interface{}{
		"type":    "owner_approval_changed",
		"userID":  user.ID,
		"granted": user.Granted,
	})

	return httpapi.OK(c, user)
}

func (h *AdminHandler) GetAllProperties(c echo.Context) error {
	var properties []models.Property
	if err := h.DB.Find(&properties).Error; err != nil {
		return httpapi.Internal(c, err)
	}
	return httpapi.OK(c, properties)
}

func (h *AdminHandler) GetAllBookings(c echo.Context) error {
	var bookings []models.Booking
	if err := h.DB.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return httpapi.Internal(c, err)
	}
	return httpapi.OK(c, bookings)
}
