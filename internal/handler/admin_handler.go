package handler

import (
	"net/http"
	"strconv"
	"time"

	appmw "github.com/bazary/bazary-backend/internal/middleware"
	"github.com/bazary/bazary-backend/internal/model"
	"github.com/bazary/bazary-backend/internal/repository"
	"github.com/bazary/bazary-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// AdminHandler serves the staff console: user administration, the full
// product list including hidden listings, and platform counters.
type AdminHandler struct {
	users    service.UserService
	products service.ProductService
	userRepo repository.UserRepository
	prodRepo repository.ProductRepository
	reports  repository.ReportRepository
}

func NewAdminHandler(users service.UserService, products service.ProductService, userRepo repository.UserRepository, prodRepo repository.ProductRepository, reports repository.ReportRepository) *AdminHandler {
	return &AdminHandler{users: users, products: products, userRepo: userRepo, prodRepo: prodRepo, reports: reports}
}

type AdminUserResponse struct {
	ID         uint64  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	City       string  `json:"city"`
	Role       string  `json:"role"`
	MannerTemp float64 `json:"mannerTemp"`
	CreatedAt  string  `json:"createdAt"`
}

func toAdminUserResponse(u *model.User) AdminUserResponse {
	return AdminUserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		City:       u.City,
		Role:       string(u.Role),
		MannerTemp: u.MannerTemp,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
	}
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	list, total, err := h.users.List(c.Request().Context(), appmw.CallerRole(c), limit, (page-1)*limit)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]AdminUserResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toAdminUserResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"users": resp,
		"total": total,
		"page":  page,
	})
}

type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user moderator admin"`
}

func (h *AdminHandler) ChangeRole(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid user id"))
	}
	var req ChangeRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	u, err := h.users.ChangeRole(c.Request().Context(), appmw.CallerID(c), appmw.CallerRole(c), id, req.Role)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toAdminUserResponse(u))
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid user id"))
	}
	if err := h.users.Delete(c.Request().Context(), appmw.CallerRole(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// ListProducts includes hidden listings, unlike the public catalogue.
func (h *AdminHandler) ListProducts(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	list, total, err := h.products.ListAll(c.Request().Context(), appmw.CallerRole(c), limit, (page-1)*limit)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]ProductResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toProductResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": resp,
		"total":    total,
		"page":     page,
	})
}

type SetHiddenRequest struct {
	Hidden bool `json:"hidden"`
}

func (h *AdminHandler) SetProductHidden(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid product id"))
	}
	var req SetHiddenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	p, err := h.products.SetHidden(c.Request().Context(), id, req.Hidden, appmw.CallerRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toProductResponse(p))
}

type SetProductStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available reserved sold"`
}

func (h *AdminHandler) SetProductStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid product id"))
	}
	var req SetProductStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	p, err := h.products.SetStatus(c.Request().Context(), id, req.Status, appmw.CallerRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toProductResponse(p))
}

func (h *AdminHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	users, err := h.userRepo.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to compute stats"))
	}
	products, err := h.prodRepo.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to compute stats"))
	}
	pendingReports, err := h.reports.CountPending(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to compute stats"))
	}
	return c.JSON(http.StatusOK, map[string]int64{
		"users":          users,
		"products":       products,
		"pendingReports": pendingReports,
	})
}
