package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/rentnest/rentnest/internal/events"
	"github.com/rentnest/rentnest/internal/httpapi"
	"github.com/rentnest/rentnest/internal/logging"
	"github.com/rentnest/rentnest/internal/models"
	"github.com/rentnest/rentnest/internal/search"
)

type PropertyHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
	Search   *search.Index
}

// GetAllProperties is the public listing: the full set, unpaginated.
// Clients filter on their side; the search endpoint exists for anything
// beyond that.
func (h *PropertyHandler) GetAllProperties(c echo.Context) error {
	var properties []models.Property
	if err := h.DB.Find(&properties).Error; err != nil {
		return httpapi.Internal(c, err)
	}
	return httpapi.OK(c, properties)
}

func (h *PropertyHandler) ListOwn(c echo.Context) error {
	userID, _ := identity(c)

	var properties []models.Property
	if err := h.DB.Where("owner_id = ?", userID).Find(&properties).Error; err != nil {
		return httpapi.Internal(c, err)
	}
	return httpapi.OK(c, properties)
}

func (h *PropertyHandler) Create(c echo.Context) error {
	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Address     string   `json:"address"`
		Price       float64  `json:"price"`
		Bedrooms    int      `json:"bedrooms"`
		Bathrooms   int      `json:"bathrooms"`
		Area        int      `json:"area"`
		Images      []string `json:"images"`
		Amenities   []string `json:"amenities"`
	}

	if err := c.Bind(&req); err != nil {
		return httpapi.Fail(c, http.StatusBadRequest, httpapi.CodeValidation, err.Error())
	}
	if req.Title == "" || req.Address == "" {
		return httpapi.Fail(c, http.StatusBadRequest, httpapi.CodeValidation, "title and address are required")
	}
	if req.Price < 0 {
		return httpapi.Fail(c, http.StatusBadRequest, httpapi.CodeValidation, "price cannot be negative")
	}

	userID, _ := identity(c)

	var owner models.User
	if err := h.DB.Where("id = ?", userID).First(&owner).Error; err != nil {
		return httpapi.Internal(c, err)
	}

	prop := models.Property{
		ID:          uuid.NewString(),
		OwnerID:     owner.ID,
		OwnerName:   owner.Name,
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Price:       req.Price,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Area:        req.Area,
		Images:      req.Images,
		Amenities:   req.Amenities,
		Available:   true,
		CreatedAt:   time.Now().Unix(),
	}

	if err := h.DB.Create(&prop).Error; err != nil {
		return httpapi.Internal(c, err)
	}

	h.index(c, &prop)
	publish(c, h.Producer, events.TopicPropertyEvents, prop.ID, map[string]interface{}{
		"type":       "property_created",
		"propertyID": prop.ID,
		"ownerID":    prop.OwnerID,
	})

	return httpapi.Created(c, "Property added", prop)
}

func (h *PropertyHandler) Update(c echo.Context) error {
	prop, err := h.loadOwned(c)
	if prop == nil {
		return err
	}

	var req struct {
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		Address     *string   `json:"address"`
		Price       *float64  `json:"price"`
		Bedrooms    *int      `json:"bedrooms"`
		Bathrooms   *int      `json:"bathrooms"`
		Area        *int      `json:"area"`
		Images      *[]string `json:"images"`
		Amenities   *[]string `json:"amenities"`
		Available   *bool     `json:"available"`
	}

	if err := c.Bind(&req); err != nil {
		return httpapi.Fail(c, http.StatusBadRequest, httpapi.CodeValidation, err.Error())
	}

	if req.Title != nil {
		prop.Title = *req.Title
	}
	if req.Description != nil {
		prop.Description = *req.Description
	}
	if req.Address != nil {
		prop.Address = *req.Address
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return httpapi.Fail(c, http.StatusBadRequest, httpapi.CodeValidation, "price cannot be negative")
		}
		prop.Price = *req.Price
	}
	if req.Bedrooms != nil {
		prop.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		prop.Bathrooms = *req.Bathrooms
	}
	if req.Area != nil {
		prop.Area = *req.Area
	}
	if req.Images != nil {
		prop.Images = *req.Images
	}
	if req.Amenities != nil {
		prop.Amenities = *req.Amenities
	}
	if req.Available != nil {
		prop.Available = *req.Available
	}

	if err := h.DB.Save(prop).Error; err != nil {
		return httpapi.Internal(c, err)
	}

	h.index(c, prop)
	publish(c, h.Producer, events.TopicPropertyEvents, prop.ID, map[string]interface{}{
		"type":       "property_updated",
		"propertyID": prop.ID,
		"ownerID":    prop.OwnerID,
	})

	return httpapi.OK(c, prop)
}

func (h *PropertyHandler) Delete(c echo.Context) error {
	prop, err := h.loadOwned(c)
	if prop == nil {
		return err
	}

	if err := h.DB.Delete(&models.Property{}, "id = ?", prop.ID).Error; err != nil {
		return httpapi.Internal(c, err)
	}

	if err := h.Search.DeleteProperty(c.Request().Context(), prop.ID); err != nil {
		logging.FromContext(c.Request().Context()).Error("search_delete_error", "propertyID", prop.ID, "error", err)
	}
	publish(c, h.Producer, events.TopicPropertyEvents, prop.ID, map[string]interface{}{
		"type":       "property_deleted",
		"propertyID": prop.ID,
		"ownerID":    prop.OwnerID,
	})

	return httpapi.Message(c, "Property deleted")
}

// loadOwned fetches the :propertyid parameter and rejects callers who
// are neither the owning user nor an admin. On rejection the response
// has already been written and the property is nil; callers pass the
// returned error through.
func (h *PropertyHandler) loadOwned(c echo.Context) (*models.Property, error) {
	id := c.Param("propertyid")
	userID, role := identity(c)

	var prop models.Property
	if err := h.DB.Where("id = ?", id).First(&prop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httpapi.Fail(c, http.StatusNotFound, httpapi.CodeNotFound, "Property not found")
		}
		return nil, httpapi.Internal(c, err)
	}

	if prop.OwnerID != userID && role != models.RoleAdmin {
		logging.FromContext(c.Request().Context()).Warn("property_access_denied",
			"propertyID", prop.ID, "userID", userID)
		return nil, httpapi.Fail(c, http.StatusForbidden, httpapi.CodeForbidden, "not enough rights")
	}

	return &prop, nil
}

func (h *PropertyHandler) index(c echo.Context, p *models.Property) {
	if err := h.Search.IndexProperty(c.Request().Context(), p); err != nil {
		logging.FromContext(c.Request().Context()).Error("search_index_error", "propertyID", p.ID, "error", err)
	}
}
