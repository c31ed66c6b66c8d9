package handler

import (
	"net/http"
	"strconv"
	"time"

	appmw "github.com/bazary/bazary-backend/internal/middleware"
	"github.com/bazary/bazary-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type FavoriteHandler struct {
	svc service.FavoriteService
}

func NewFavoriteHandler(svc service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{svc: svc}
}

type FavoriteResponse struct {
	ID        uint64 `json:"id"`
	UserID    uint64 `json:"userId"`
	ProductID uint64 `json:"productId"`
	CreatedAt string `json:"createdAt"`
}

type AddFavoriteRequest struct {
	ProductID uint64 `json:"productId" validate:"required"`
}

func (h *FavoriteHandler) Add(c echo.Context) error {
	var req AddFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	f, err := h.svc.Add(c.Request().Context(), appmw.CallerID(c), req.ProductID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, FavoriteResponse{
		ID:        f.ID,
		UserID:    f.UserID,
		ProductID: f.ProductID,
		CreatedAt: f.CreatedAt.Format(time.RFC3339),
	})
}

func (h *FavoriteHandler) Remove(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid product id"))
	}
	if err := h.svc.Remove(c.Request().Context(), appmw.CallerID(c), productID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *FavoriteHandler) List(c echo.Context) error {
	list, err := h.svc.ListByUser(c.Request().Context(), appmw.CallerID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch favorites"))
	}
	resp := make([]FavoriteResponse, 0, len(list))
	for _, f := range list {
		resp = append(resp, FavoriteResponse{
			ID:        f.ID,
			UserID:    f.UserID,
			ProductID: f.ProductID,
			CreatedAt: f.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *FavoriteHandler) Check(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid product id"))
	}
	ok, err := h.svc.IsFavorited(c.Request().Context(), appmw.CallerID(c), productID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to check favorite"))
	}
	return c.JSON(http.StatusOK, map[string]bool{"isFavorited": ok})
}
