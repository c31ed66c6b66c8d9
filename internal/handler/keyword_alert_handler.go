package handler

import (
	"net/http"
	"strconv"
	"time"

	appmw "github.com/bazary/bazary-backend/internal/middleware"
	"github.com/bazary/bazary-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type KeywordAlertHandler struct {
	svc service.KeywordAlertService
}

func NewKeywordAlertHandler(svc service.KeywordAlertService) *KeywordAlertHandler {
	return &KeywordAlertHandler{svc: svc}
}

type KeywordAlertResponse struct {
	ID        uint64 `json:"id"`
	Keyword   string `json:"keyword"`
	CreatedAt string `json:"createdAt"`
}

type CreateKeywordAlertRequest struct {
	Keyword string `json:"keyword" validate:"required,min=2"`
}

func (h *KeywordAlertHandler) Create(c echo.Context) error {
	var req CreateKeywordAlertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	a, err := h.svc.Create(c.Request().Context(), appmw.CallerID(c), req.Keyword)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, KeywordAlertResponse{
		ID:        a.ID,
		Keyword:   a.Keyword,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	})
}

func (h *KeywordAlertHandler) List(c echo.Context) error {
	list, err := h.svc.ListByUser(c.Request().Context(), appmw.CallerID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch alerts"))
	}
	resp := make([]KeywordAlertResponse, 0, len(list))
	for _, a := range list {
		resp = append(resp, KeywordAlertResponse{
			ID:        a.ID,
			Keyword:   a.Keyword,
			CreatedAt: a.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *KeywordAlertHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid alert id"))
	}
	if err := h.svc.Delete(c.Request().Context(), appmw.CallerID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
