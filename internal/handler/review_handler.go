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

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

type ReviewResponse struct {
	ID          uint64  `json:"id"`
	ReviewerID  uint64  `json:"reviewerId"`
	ReviewedID  uint64  `json:"reviewedId"`
	ProductID   uint64  `json:"productId"`
	Rating      int     `json:"rating"`
	MannerItems string  `json:"mannerItems"`
	Content     *string `json:"content,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

func toReviewResponse(rv *model.Review) ReviewResponse {
	return ReviewResponse{
		ID:          rv.ID,
		ReviewerID:  rv.ReviewerID,
		ReviewedID:  rv.ReviewedID,
		ProductID:   rv.ProductID,
		Rating:      rv.Rating,
		MannerItems: rv.MannerItems,
		Content:     rv.Content,
		CreatedAt:   rv.CreatedAt.Format(time.RFC3339),
	}
}

type CreateReviewRequest struct {
	ReviewedID  uint64  `json:"reviewedId" validate:"required"`
	ProductID   uint64  `json:"productId" validate:"required"`
	Rating      int     `json:"rating" validate:"required,min=1,max=5"`
	MannerItems string  `json:"mannerItems" validate:"required"`
	Content     *string `json:"content"`
}

func (h *ReviewHandler) Create(c echo.Context) error {
	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	rv := &model.Review{
		ReviewedID:  req.ReviewedID,
		ProductID:   req.ProductID,
		Rating:      req.Rating,
		MannerItems: req.MannerItems,
		Content:     req.Content,
	}
	created, err := h.svc.Create(c.Request().Context(), appmw.CallerID(c), rv)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toReviewResponse(created))
}

func (h *ReviewHandler) List(c echo.Context) error {
	userID := appmw.CallerID(c)
	if v := c.QueryParam("userId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid user id"))
		}
		userID = id
	}
	list, err := h.svc.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch reviews"))
	}
	resp := make([]ReviewResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toReviewResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}
