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

type ReportHandler struct {
	svc service.ModerationService
}

func NewReportHandler(svc service.ModerationService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

type ReportResponse struct {
	ID          uint64  `json:"id"`
	ProductID   uint64  `json:"productId"`
	ReporterID  uint64  `json:"reporterId"`
	Reason      string  `json:"reason"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func toReportResponse(rp *model.Report) ReportResponse {
	return ReportResponse{
		ID:          rp.ID,
		ProductID:   rp.ProductID,
		ReporterID:  rp.ReporterID,
		Reason:      string(rp.Reason),
		Description: rp.Description,
		Status:      string(rp.Status),
		CreatedAt:   rp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   rp.UpdatedAt.Format(time.RFC3339),
	}
}

type FileReportRequest struct {
	Reason      string  `json:"reason" validate:"required"`
	Description *string `json:"description"`
}

func (h *ReportHandler) File(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid product id"))
	}
	var req FileReportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	rp, err := h.svc.FileReport(c.Request().Context(), productID, appmw.CallerID(c), req.Reason, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toReportResponse(rp))
}

func (h *ReportHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	list, total, err := h.svc.ListReports(c.Request().Context(), appmw.CallerRole(c), c.QueryParam("status"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]ReportResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toReportResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"reports": resp,
		"total":   total,
	})
}

type ResolveReportRequest struct {
	Status      string `json:"status" validate:"required,oneof=reviewed resolved"`
	HideProduct bool   `json:"hideProduct"`
}

func (h *ReportHandler) Resolve(c echo.Context) error {
	reportID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid report id"))
	}
	var req ResolveReportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	rp, err := h.svc.ResolveReport(c.Request().Context(), reportID, appmw.CallerRole(c), req.Status, req.HideProduct)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toReportResponse(rp))
}
