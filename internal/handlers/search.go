package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rentnest/rentnest/internal/httpapi"
	"github.com/rentnest/rentnest/internal/search"
	"github.com/rentnest/rentnest/internal/util"
)

type SearchHandler struct {
	Index *search.Index
}

func (h *SearchHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return httpapi.Fail(c, http.StatusBadRequest, httpapi.CodeValidation, "query parameter q is required")
	}
	if h.Index == nil || h.Index.ES == nil {
		return httpapi.Fail(c, http.StatusServiceUnavailable, httpapi.CodeInternal, "search is not configured")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, size := util.Calculate(page, size)

	total, properties, err := h.Index.Search(c.Request().Context(), q, from, size)
	if err != nil {
		return httpapi.Internal(c, err)
	}

	return httpapi.OK(c, echo.Map{"total": total, "properties": properties})
}
