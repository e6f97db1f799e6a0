package catalog

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	discogsrepo "github.com/DavidOvMu23/Viniloteca/repository/discogs"
	catalogsvc "github.com/DavidOvMu23/Viniloteca/service/catalog"
)

type Controller struct {
	Svc catalogsvc.Service
	Log *slog.Logger
}

// GET /v1/catalog/search?q=&page=
func (h *Controller) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "missing query"})
	}
	page, _ := strconv.Atoi(c.QueryParam("page"))

	rows, err := h.Svc.Search(c.Request().Context(), q, page)
	if err != nil {
		h.Log.Warn("catalog search", "q", q, "err", err)
		return h.catalogError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/catalog/releases/:id
func (h *Controller) Release(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	d, err := h.Svc.Release(c.Request().Context(), id)
	if err != nil {
		h.Log.Warn("catalog release", "id", id, "err", err)
		return h.catalogError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": d})
}

// The catalog is a third-party dependency: its failures surface as soft
// errors, never as 500s.
func (h *Controller) catalogError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, discogsrepo.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": "release not found"})
	case errors.Is(err, discogsrepo.ErrRateLimited):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"message": "catalog busy, try again shortly"})
	default:
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"message": "catalog unavailable"})
	}
}
