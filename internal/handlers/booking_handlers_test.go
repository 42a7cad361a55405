package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rentnest/rentnest/internal/httpapi"
	"github.com/rentnest/rentnest/internal/models"
	"github.com/rentnest/rentnest/internal/seed"
)

func seedProperty(t *testing.T, db *gorm.DB, owner *models.User) *models.Property {
	t.Helper()
	require.NoError(t, seed.Load(db, owner))
	var prop models.Property
	require.NoError(t, db.Where("owner_id = ?", owner.ID).First(&prop).Error)
	return &prop
}

func placeBooking(t *testing.T, h *BookingHandler, e *echo.Echo, renter *models.User, propertyID string) models.Booking {
	t.Helper()
	c, rec := jsonRequest(e, http.MethodPost, "/", map[string]string{
		"full_name": renter.Name,
		"phone":     "555-0101",
		"check_in":  "2026-10-01",
		"check_out": "2026-10-04",
	})
	c.SetParamNames("propertyid")
	c.SetParamValues(propertyID)
	asUser(c, renter)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var booking models.Booking
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &booking))
	return booking
}

func TestBookingLifecycle(t *testing.T) {
	db := newTestDB(t)
	h := &BookingHandler{DB: db}
	e := echo.New()

	owner := createUser(t, db, "o@x.com", models.RoleOwner, true)
	renter := createUser(t, db, "r@x.com", models.RoleRenter, true)
	prop := seedProperty(t, db, owner)

	booking := placeBooking(t, h, e, renter, prop.ID)
	require.Equal(t, models.BookingStatusPending, booking.Status)
	require.Equal(t, renter.ID, booking.RenterID)
	require.Equal(t, owner.ID, booking.OwnerID)
	require.Equal(t, prop.Price*3, booking.TotalPrice, "three nights at the nightly rate")

	// the owner confirms
	c, rec := jsonRequest(e, http.MethodPost, "/api/owner/handlebookingstatus", map[string]string{
		"booking_id": booking.ID,
		"status":     models.BookingStatusConfirmed,
	})
	asUser(c, owner)
	require.NoError(t, h.UpdateStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// the renter sees the updated status
	c, rec = jsonRequest(e, http.MethodGet, "/api/user/getallbookings", nil)
	asUser(c, renter)
	require.NoError(t, h.ListForUser(c))

	var mine []models.Booking
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &mine))
	require.Len(t, mine, 1)
	require.Equal(t, models.BookingStatusConfirmed, mine[0].Status)
}

func TestBookingStatusTransitionsAreGated(t *testing.T) {
	db := newTestDB(t)
	h := &BookingHandler{DB: db}
	e := echo.New()

	owner := createUser(t, db, "o@x.com", models.RoleOwner, true)
	otherOwner := createUser(t, db, "o2@x.com", models.RoleOwner, true)
	renter := createUser(t, db, "r@x.com", models.RoleRenter, true)
	admin := createUser(t, db, "admin@x.com", models.RoleAdmin, true)
	prop := seedProperty(t, db, owner)

	booking := placeBooking(t, h, e, renter, prop.ID)

	// only the property's owner or an admin may transition
	c, rec := jsonRequest(e, http.MethodPost, "/", map[string]string{
		"booking_id": booking.ID,
		"status":     models.BookingStatusConfirmed,
	})
	asUser(c, otherOwner)
	require.NoError(t, h.UpdateStatus(c))
	require.Equal(t, http.StatusForbidden, rec.Code)

	// pending is not a valid target
	c, rec = jsonRequest(e, http.MethodPost, "/", map[string]string{
		"booking_id": booking.ID,
		"status":     models.BookingStatusPending,
	})
	asUser(c, owner)
	require.NoError(t, h.UpdateStatus(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// admin cancels
	c, rec = jsonRequest(e, http.MethodPost, "/", map[string]string{
		"booking_id": booking.ID,
		"status":     models.BookingStatusCancelled,
	})
	asUser(c, admin)
	require.NoError(t, h.UpdateStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// a settled booking never moves again
	c, rec = jsonRequest(e, http.MethodPost, "/", map[string]string{
		"booking_id": booking.ID,
		"status":     models.BookingStatusConfirmed,
	})
	asUser(c, owner)
	require.NoError(t, h.UpdateStatus(c))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, httpapi.CodeConflict, decode(t, rec).Error)

	var stored models.Booking
	require.NoError(t, db.Where("id = ?", booking.ID).First(&stored).Error)
	require.Equal(t, models.BookingStatusCancelled, stored.Status)
}

func TestBookingUnknownProperty(t *testing.T) {
	db := newTestDB(t)
	h := &BookingHandler{DB: db}
	e := echo.New()

	renter := createUser(t, db, "r@x.com", models.RoleRenter, true)

	c, rec := jsonRequest(e, http.MethodPost, "/", map[string]string{
		"full_name": "R", "phone": "555-0102",
	})
	c.SetParamNames("propertyid")
	c.SetParamValues("missing")
	asUser(c, renter)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingDegenerateDatesPriceAtZero(t *testing.T) {
	db := newTestDB(t)
	h := &BookingHandler{DB: db}
	e := echo.New()

	owner := createUser(t, db, "o@x.com", models.RoleOwner, true)
	renter := createUser(t, db, "r@x.com", models.RoleRenter, true)
	prop := seedProperty(t, db, owner)

	// check-out before check-in is accepted but prices at zero
	c, rec := jsonRequest(e, http.MethodPost, "/", map[string]string{
		"full_name": "R",
		"phone":     "555-0103",
		"check_in":  "2026-10-04",
		"check_out": "2026-10-01",
	})
	c.SetParamNames("propertyid")
	c.SetParamValues(prop.ID)
	asUser(c, renter)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var booking models.Booking
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &booking))
	require.Equal(t, models.BookingStatusPending, booking.Status)
	require.Zero(t, booking.TotalPrice)
}

func TestOwnersAndAdminsSeeAllBookings(t *testing.T) {
	db := newTestDB(t)
	h := &BookingHandler{DB: db}
	e := echo.New()

	owner := createUser(t, db, "o@x.com", models.RoleOwner, true)
	renterA := createUser(t, db, "ra@x.com", models.RoleRenter, true)
	renterB := createUser(t, db, "rb@x.com", models.RoleRenter, true)
	prop := seedProperty(t, db, owner)

	placeBooking(t, h, e, renterA, prop.ID)
	placeBooking(t, h, e, renterB, prop.ID)

	c, rec := jsonRequest(e, http.MethodGet, "/", nil)
	asUser(c, renterA)
	require.NoError(t, h.ListForUser(c))
	var got []models.Booking
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &got))
	require.Len(t, got, 1)

	c, rec = jsonRequest(e, http.MethodGet, "/", nil)
	asUser(c, owner)
	require.NoError(t, h.ListForUser(c))
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &got))
	require.Len(t, got, 2)
}
