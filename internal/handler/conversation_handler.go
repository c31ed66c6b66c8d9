package handler

import (
	"net/http"
	"strconv"
	"time"

	appmw "github.com/bazary/bazary-backend/internal/middleware"
	"github.com/bazary/bazary-backend/internal/model"
	"github.com/bazary/bazary-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type ConversationHandler struct {
	svc service.ConversationService
}

func NewConversationHandler(svc service.ConversationService) *ConversationHandler {
	return &ConversationHandler{svc: svc}
}

type MessageResponse struct {
	ID             uint64 `json:"id"`
	ConversationID uint64 `json:"conversationId"`
	SenderID       uint64 `json:"senderId"`
	Content        string `json:"content"`
	Read           bool   `json:"read"`
	CreatedAt      string `json:"createdAt"`
}

func toMessageResponse(m *model.Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		Read:           m.Read,
		CreatedAt:      m.CreatedAt.Format(time.RFC3339),
	}
}

type ConversationResponse struct {
	ID          uint64           `json:"id"`
	ProductID   uint64           `json:"productId"`
	BuyerID     uint64           `json:"buyerId"`
	SellerID    uint64           `json:"sellerId"`
	LastMessage *MessageResponse `json:"lastMessage,omitempty"`
	CreatedAt   string           `json:"createdAt"`
	UpdatedAt   string           `json:"updatedAt"`
}

type StartConversationRequest struct {
	ProductID uint64 `json:"productId" validate:"required"`
	Message   string `json:"message"`
}

func (h *ConversationHandler) Start(c echo.Context) error {
	var req StartConversationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	cv, err := h.svc.Start(c.Request().Context(), req.ProductID, appmw.CallerID(c), req.Message)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, ConversationResponse{
		ID:        cv.ID,
		ProductID: cv.ProductID,
		BuyerID:   cv.BuyerID,
		SellerID:  cv.SellerID,
		CreatedAt: cv.CreatedAt.Format(time.RFC3339),
		UpdatedAt: cv.UpdatedAt.Format(time.RFC3339),
	})
}

func (h *ConversationHandler) List(c echo.Context) error {
	list, err := h.svc.ListByUser(c.Request().Context(), appmw.CallerID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch conversations"))
	}
	resp := make([]ConversationResponse, 0, len(list))
	for _, row := range list {
		cr := ConversationResponse{
			ID:        row.Conversation.ID,
			ProductID: row.Conversation.ProductID,
			BuyerID:   row.Conversation.BuyerID,
			SellerID:  row.Conversation.SellerID,
			CreatedAt: row.Conversation.CreatedAt.Format(time.RFC3339),
			UpdatedAt: row.Conversation.UpdatedAt.Format(time.RFC3339),
		}
		if row.LastMessage != nil {
			mr := toMessageResponse(row.LastMessage)
			cr.LastMessage = &mr
		}
		resp = append(resp, cr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ConversationHandler) ListMessages(c echo.Context) error {
	convID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid conversation id"))
	}
	msgs, err := h.svc.ListMessages(c.Request().Context(), convID, appmw.CallerID(c))
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]MessageResponse, 0, len(msgs))
	for i := range msgs {
		resp = append(resp, toMessageResponse(&msgs[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

type PostMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

func (h *ConversationHandler) PostMessage(c echo.Context) error {
	convID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid conversation id"))
	}
	var req PostMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	msg, err := h.svc.PostMessage(c.Request().Context(), convID, appmw.CallerID(c), req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toMessageResponse(msg))
}

func (h *ConversationHandler) UnreadCount(c echo.Context) error {
	cnt, err := h.svc.CountUnread(c.Request().Context(), appmw.CallerID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to count unread"))
	}
	return c.JSON(http.StatusOK, map[string]int64{"unread": cnt})
}
