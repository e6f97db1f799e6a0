package rental

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/DavidOvMu23/Viniloteca/model"
	rs "github.com/DavidOvMu23/Viniloteca/service/rental"
)

type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/rentals
func (h *Controller) Create(c echo.Context) error {
	var req CreateRentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	uid, _ := c.Get("user_id").(uuid.UUID)
	supervisor, _ := c.Get("is_supervisor").(bool)

	in := rs.CreateInput{
		UserID:    uid,
		DiscogsID: req.DiscogsID,
		RentedAt:  req.RentedAt,
		DueAt:     req.DueAt,
	}
	if req.UserID != "" {
		target, err := uuid.Parse(req.UserID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user_id"})
		}
		if target != uid {
			if !supervisor {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
			}
			in.UserID = target
			in.OperatorID = &uid
		}
	}

	rec, err := h.Svc.Create(c.Request().Context(), in)
	if err != nil {
		switch rs.Code(err) {
		case rs.ErrInvalidRange:
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"message": "due date before rental start"})
		case rs.ErrDurationExceeded:
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"message": "rental period exceeds the maximum"})
		default:
			h.Log.Error("rental create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"rental": rec,
		"status": rs.DeriveStatus(*rec, time.Now()),
	})
}

// POST /v1/rentals/:id/return
func (h *Controller) Return(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(uuid.UUID)
	supervisor, _ := c.Get("is_supervisor").(bool)

	rec, err := h.Svc.Return(c.Request().Context(), uid, supervisor, id)
	if err != nil {
		switch rs.Code(err) {
		case rs.ErrAlreadyReturned:
			// duplicate return is fine: report the stored record as success
			return c.JSON(http.StatusOK, echo.Map{
				"rental": rec,
				"status": model.RentalReturned,
			})
		case rs.ErrNotOwner:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		case rs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "rental not found"})
		default:
			h.Log.Error("rental return", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"rental": rec,
		"status": model.RentalReturned,
	})
}

// GET /v1/rentals/my
func (h *Controller) MyHistory(c echo.Context) error {
	uid, _ := c.Get("user_id").(uuid.UUID)
	rows, err := h.Svc.History(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("history", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
