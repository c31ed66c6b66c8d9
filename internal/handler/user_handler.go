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

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	City     string `json:"city" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	City     *string `json:"city"`
	District *string `json:"district"`
	Image    *string `json:"image"`
}

// UserResponse is the caller's own view of their account.
type UserResponse struct {
	ID         uint64  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone,omitempty"`
	City       string  `json:"city"`
	District   *string `json:"district,omitempty"`
	Image      *string `json:"image,omitempty"`
	Role       string  `json:"role"`
	MannerTemp float64 `json:"mannerTemp"`
	CreatedAt  string  `json:"createdAt"`
}

type PublicProfileResponse struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	City        string  `json:"city"`
	District    *string `json:"district,omitempty"`
	Image       *string `json:"image,omitempty"`
	MannerTemp  float64 `json:"mannerTemp"`
	ReviewCount int64   `json:"reviewCount"`
	MemberSince string  `json:"memberSince"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		City:       u.City,
		District:   u.District,
		Image:      u.Image,
		Role:       string(u.Role),
		MannerTemp: u.MannerTemp,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
	}
}

func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	u, err := h.svc.Register(c.Request().Context(), req.Name, req.Email, req.Password, req.City)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toUserResponse(u))
}

func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	u, token, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  toUserResponse(u),
	})
}

func (h *UserHandler) Me(c echo.Context) error {
	u, err := h.svc.Get(c.Request().Context(), appmw.CallerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	u, err := h.svc.UpdateProfile(c.Request().Context(), appmw.CallerID(c), service.ProfileUpdate{
		Name:     req.Name,
		Phone:    req.Phone,
		City:     req.City,
		District: req.District,
		Image:    req.Image,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) GetPublicProfile(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid user id"))
	}
	p, err := h.svc.GetPublicProfile(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, PublicProfileResponse{
		ID:          p.ID,
		Name:        p.Name,
		City:        p.City,
		District:    p.District,
		Image:       p.Image,
		MannerTemp:  p.MannerTemp,
		ReviewCount: p.ReviewCount,
		MemberSince: p.CreatedAt.Format(time.RFC3339),
	})
}
