package client

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/DavidOvMu23/Viniloteca/model"
	clientsvc "github.com/DavidOvMu23/Viniloteca/service/client"
	rentalsvc "github.com/DavidOvMu23/Viniloteca/service/rental"
)

type Controller struct {
	Svc       clientsvc.Service
	RentalSvc rentalsvc.Service
	V         *validator.Validate
	Log       *slog.Logger
}

func isSupervisor(c echo.Context) bool {
	sup, _ := c.Get("is_supervisor").(bool)
	return sup
}

// GET /v1/clients  (supervisor)
func (h *Controller) List(c echo.Context) error {
	if !isSupervisor(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("client list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/clients/:id  (supervisor)
func (h *Controller) Detail(c echo.Context) error {
	if !isSupervisor(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	u, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, clientsvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "client not found"})
		}
		h.Log.Error("client detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": u})
}

// PATCH /v1/clients/:id  (supervisor)
func (h *Controller) Update(c echo.Context) error {
	if !isSupervisor(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req model.UpdateClientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	u, err := h.Svc.Update(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, clientsvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "client not found"})
		}
		h.Log.Error("client update", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": u})
}

// GET /v1/clients/:id/rentals  (supervisor)
func (h *Controller) Rentals(c echo.Context) error {
	if !isSupervisor(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	rows, err := h.RentalSvc.History(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("client rentals", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
