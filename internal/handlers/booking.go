package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/rentnest/rentnest/internal/events"
	"github.com/rentnest/rentnest/internal/httpapi"
	"github.com/rentnest/rentnest/internal/logging"
	"github.com/rentnest/rentnest/internal/models"
)

type BookingHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
}

const dateLayout = "2006-01-02"

// Create books the :propertyid property for the authenticated user.
// Every booking starts out pending; the client cannot choose a status.
func (h *BookingHandler) Create(c echo.Context) error {
	var req struct {
		FullName string `json:"full_name"`
		Phone    string `json:"phone"`
		CheckIn  string `json:"check_in"`
		CheckOut string `json:"check_out"`
	}

	if err := c.Bind(&req); err != nil {
		return httpapi.Fail(c, http.StatusBadRequest, httpapi.CodeValidation, err.Error())
	}
	if req.FullName == "" || req.Phone == "" {
		return httpapi.Fail(c, http.StatusBadRequest, httpapi.CodeValidation, "full_name and phone are required")
	}

	userID, _ := identity(c)
	propertyID := c.Param("propertyid")

	var prop models.Property
	if err := h.DB.Where("id = ?", propertyID).First(&prop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpapi.Fail(c, http.StatusNotFound, httpapi.CodeNotFound, "Property not found")
		}
		return httpapi.Internal(c, err)
	}

	booking := models.Booking{
		ID:         uuid.NewString(),
		PropertyID: prop.ID,
		RenterID:   userID,
		OwnerID:    prop.OwnerID,
		RenterName: req.FullName,
		Phone:      req.Phone,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		TotalPrice: totalPrice(prop.Price, req.CheckIn, req.CheckOut),
		Status:     models.BookingStatusPending,
		CreatedAt:  time.Now().Unix(),
	}

	if err := h.DB.Create(&booking).Error; err != nil {
		return httpapi.Internal(c, err)
	}

	publish(c, h.Producer, events.TopicBookingEvents, booking.ID, map[string]interface{}{
		"type":       "booking_created",
		"bookingID":  booking.ID,
		"propertyID": booking.PropertyID,
		"renterID":   booking.RenterID,
	})

	return httpapi.Created(c, "Booking placed", booking)
}

// ListForUser scopes the listing by role: renters get their own
// bookings, owners and admins get everything.
func (h *BookingHandler) ListForUser(c echo.Context) error {
	userID, role := identity(c)

	q := h.DB.Order("created_at DESC")
	if role == models.RoleRenter {
		q = q.Where("renter_id = ?", userID)
	}

	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return httpapi.Internal(c, err)
	}
	return httpapi.OK(c, bookings)
}

// UpdateStatus moves a pending booking to confirmed or cancelled. Only
// the property's owner or an admin may do this, and a booking that has
// already left pending stays where it is.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	var req struct {
		BookingID string `json:"booking_id"`
		Status    string `json:"status"`
	}

	if err := c.Bind(&req); err != nil {
		return httpapi.Fail(c, http.StatusBadRequest, httpapi.CodeValidation, err.Error())
	}
	if req.Status != models.BookingStatusConfirmed && req.Status != models.BookingStatusCancelled {
		return httpapi.Fail(c, http.StatusBadRequest, httpapi.CodeValidation,
			fmt.Sprintf("status must be %q or %q", models.BookingStatusConfirmed, models.BookingStatusCancelled))
	}

	userID, role := identity(c)

	var booking models.Booking
	if err := h.DB.Where("id = ?", req.BookingID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpapi.Fail(c, http.StatusNotFound, httpapi.CodeNotFound, "Booking not found")
		}
		return httpapi.Internal(c, err)
	}

	if booking.OwnerID != userID && role != models.RoleAdmin {
		logging.FromContext(c.Request().Context()).Warn("booking_access_denied",
			"bookingID", booking.ID, "userID", userID)
		return httpapi.Fail(c, http.StatusForbidden, httpapi.CodeForbidden, "not enough rights")
	}

	if booking.Status != models.BookingStatusPending {
		return httpapi.Fail(c, http.StatusConflict, httpapi.CodeConflict,
			fmt.Sprintf("booking is already %s", booking.Status))
	}

	booking.Status = req.Status
	if err := h.DB.Save(&booking).Error; err != nil {
		return httpapi.Internal(c, err)
	}

	publish(c, h.Producer, events.TopicBookingEvents, booking.ID, map[string]interface{}{
		"type":      "booking_status_changed",
		"bookingID": booking.ID,
		"status":    booking.Status,
	})

	return httpapi.OK(c, booking)
}

// totalPrice charges the nightly rate per full night. Date ordering is
// deliberately not validated here; an unparseable or inverted range
// prices at zero.
func totalPrice(nightly float64, checkIn, checkOut string) float64 {
	in, errIn := time.Parse(dateLayout, checkIn)
	out, errOut := time.Parse(dateLayout, checkOut)
	if errIn != nil || errOut != nil {
		return 0
	}
	nights := int(out.Sub(in).Hours() / 24)
	if nights <= 0 {
		return 0
	}
	return nightly * float64(nights)
}
