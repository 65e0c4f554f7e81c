package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/scrazdxvf/baraholka-backend/internal/model"
	"github.com/scrazdxvf/baraholka-backend/internal/service"
)

// ModerationHandler serves the admin queue. Routes using it are mounted
// behind the admin gate.
type ModerationHandler struct {
	svc service.ListingService
}

func NewModerationHandler(svc service.ListingService) *ModerationHandler {
	return &ModerationHandler{svc: svc}
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

// Queue lists listings by status, defaulting to the pending moderation queue.
func (h *ModerationHandler) Queue(c echo.Context) error {
	status := model.ListingStatus(c.QueryParam("status"))
	if status == "" {
		status = model.StatusPending
	}
	listings, err := h.svc.ListByStatus(c.Request().Context(), status)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toListingListResponse(listings))
}

func (h *ModerationHandler) Approve(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	listing, err := h.svc.Approve(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toListingResponse(listing))
}

func (h *ModerationHandler) Reject(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req RejectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	listing, err := h.svc.Reject(c.Request().Context(), id, req.Reason)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toListingResponse(listing))
}
