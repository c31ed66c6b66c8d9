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

type ProposalHandler struct {
	svc service.NegotiationService
}

func NewProposalHandler(svc service.NegotiationService) *ProposalHandler {
	return &ProposalHandler{svc: svc}
}

type ProposalResponse struct {
	ID            uint64 `json:"id"`
	ProductID     uint64 `json:"productId"`
	BuyerID       uint64 `json:"buyerId"`
	SellerID      uint64 `json:"sellerId"`
	ProposedPrice uint   `json:"proposedPrice"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

func toProposalResponse(p *model.PriceProposal) ProposalResponse {
	return ProposalResponse{
		ID:            p.ID,
		ProductID:     p.ProductID,
		BuyerID:       p.BuyerID,
		SellerID:      p.SellerID,
		ProposedPrice: p.ProposedPrice,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
	}
}

type ProposeRequest struct {
	ProposedPrice uint `json:"proposedPrice" validate:"required,gt=0"`
}

func (h *ProposalHandler) Propose(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid product id"))
	}
	var req ProposeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	p, err := h.svc.Propose(c.Request().Context(), productID, appmw.CallerID(c), req.ProposedPrice)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toProposalResponse(p))
}

func (h *ProposalHandler) ListByProduct(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid product id"))
	}
	list, err := h.svc.ListByProduct(c.Request().Context(), productID, appmw.CallerID(c))
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]ProposalResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toProposalResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

type DecideRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

func (h *ProposalHandler) Decide(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid product id"))
	}
	proposalID, err := strconv.ParseUint(c.Param("proposalId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid proposal id"))
	}
	var req DecideRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	p, err := h.svc.Decide(c.Request().Context(), productID, proposalID, appmw.CallerID(c), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toProposalResponse(p))
}
