package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/scrazdxvf/baraholka-backend/internal/model"
	"github.com/scrazdxvf/baraholka-backend/internal/service"
)

type ChatHandler struct {
	svc service.ChatService
}

func NewChatHandler(svc service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type SendMessageRequest struct {
	ReceiverUID string `json:"receiverUid"`
	Text        string `json:"text"`
}

type UnreadResponse struct {
	Count int64 `json:"count"`
}

type ChatListResponse struct {
	ListingIDs []uint64 `json:"listingIds"`
}

// Thread returns the caller's side of a listing's chat, ascending by time.
func (h *ChatHandler) Thread(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid listing id"))
	}
	msgs, err := h.svc.Thread(c.Request().Context(), id, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch messages"))
	}
	if msgs == nil {
		msgs = []model.Message{}
	}
	return c.JSON(http.StatusOK, msgs)
}

func (h *ChatHandler) Send(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	name, _ := c.Get("name").(string)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid listing id"))
	}
	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	msg, err := h.svc.Send(c.Request().Context(), id, uid, name, req.ReceiverUID, req.Text)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, msg)
}

func (h *ChatHandler) MarkRead(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid listing id"))
	}
	if err := h.svc.MarkThreadRead(c.Request().Context(), id, uid); err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to mark read"))
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *ChatHandler) ListChats(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	ids, err := h.svc.ChatsFor(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch chats"))
	}
	if ids == nil {
		ids = []uint64{}
	}
	return c.JSON(http.StatusOK, ChatListResponse{ListingIDs: ids})
}

// UnreadCount backs the polling unread badge in the client.
func (h *ChatHandler) UnreadCount(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	count, err := h.svc.UnreadCount(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to count unread"))
	}
	return c.JSON(http.StatusOK, UnreadResponse{Count: count})
}
