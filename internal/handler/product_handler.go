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

type ProductHandler struct {
	svc service.ProductService
}

func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

type ProductResponse struct {
	ID          uint64  `json:"id"`
	UserID      uint64  `json:"userId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       uint    `json:"price"`
	Images      string  `json:"images"`
	Category    string  `json:"category"`
	City        string  `json:"city"`
	District    *string `json:"district,omitempty"`
	Status      string  `json:"status"`
	Hidden      bool    `json:"hidden"`
	Negotiable  bool    `json:"negotiable"`
	Views       uint    `json:"views"`
	BumpedAt    *string `json:"bumpedAt,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	TotalPages int64             `json:"totalPages"`
}

func toProductResponse(p *model.Product) ProductResponse {
	var bumpedAt *string
	if p.BumpedAt != nil {
		val := p.BumpedAt.Format(time.RFC3339)
		bumpedAt = &val
	}
	return ProductResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Images:      p.Images,
		Category:    p.Category,
		City:        p.City,
		District:    p.District,
		Status:      string(p.Status),
		Hidden:      p.Hidden,
		Negotiable:  p.Negotiable,
		Views:       p.Views,
		BumpedAt:    bumpedAt,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}

type CreateProductRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"required"`
	Price       uint    `json:"price" validate:"required,gt=0"`
	Images      string  `json:"images"`
	Category    string  `json:"category" validate:"required"`
	City        string  `json:"city" validate:"required"`
	District    *string `json:"district"`
	Negotiable  *bool   `json:"negotiable"`
}

func (h *ProductHandler) Create(c echo.Context) error {
	uid := appmw.CallerID(c)
	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	p := &model.Product{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Category:    req.Category,
		City:        req.City,
		District:    req.District,
		Negotiable:  true,
	}
	if req.Negotiable != nil {
		p.Negotiable = *req.Negotiable
	}
	created, err := h.svc.Create(c.Request().Context(), uid, p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toProductResponse(created))
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid product id"))
	}
	p, err := h.svc.Get(c.Request().Context(), id, appmw.CallerID(c), appmw.CallerRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toProductResponse(p))
}

func (h *ProductHandler) List(c echo.Context) error {
	f := repository.ProductFilter{
		City:     c.QueryParam("city"),
		District: c.QueryParam("district"),
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Status:   model.ProductStatus(c.QueryParam("status")),
		Sort:     c.QueryParam("sort"),
	}
	if v := c.QueryParam("minPrice"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			min := uint(n)
			f.MinPrice = &min
		}
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			max := uint(n)
			f.MaxPrice = &max
		}
	}
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	list, total, err := h.svc.List(c.Request().Context(), f, limit, (page-1)*limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch products"))
	}
	resp := ProductListResponse{
		Products:   make([]ProductResponse, 0, len(list)),
		Total:      total,
		Page:       page,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}
	for i := range list {
		resp.Products = append(resp.Products, toProductResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) ListMine(c echo.Context) error {
	list, err := h.svc.ListMine(c.Request().Context(), appmw.CallerID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch products"))
	}
	resp := make([]ProductResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toProductResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

type UpdateProductRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Price       *uint   `json:"price"`
	Images      *string `json:"images"`
	Category    *string `json:"category"`
	City        *string `json:"city"`
	District    *string `json:"district"`
	Status      *string `json:"status"`
	Negotiable  *bool   `json:"negotiable"`
}

func (h *ProductHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid product id"))
	}
	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	p, err := h.svc.Update(c.Request().Context(), id, appmw.CallerID(c), service.ProductUpdate{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Category:    req.Category,
		City:        req.City,
		District:    req.District,
		Status:      req.Status,
		Negotiable:  req.Negotiable,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toProductResponse(p))
}

func (h *ProductHandler) Bump(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid product id"))
	}
	p, err := h.svc.Bump(c.Request().Context(), id, appmw.CallerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"bumpedAt": p.BumpedAt.Format(time.RFC3339),
	})
}

func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid product id"))
	}
	if err := h.svc.Delete(c.Request().Context(), id, appmw.CallerID(c), appmw.CallerRole(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
