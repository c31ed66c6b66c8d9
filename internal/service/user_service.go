package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/bazary/bazary-backend/internal/model"
	"github.com/bazary/bazary-backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type ProfileUpdate struct {
	Name     *string
	Phone    *string
	City     *string
	District *string
	Image    *string
}

// PublicProfile is the subset of a user shown to other users.
type PublicProfile struct {
	ID          uint64
	Name        string
	City        string
	District    *string
	Image       *string
	MannerTemp  float64
	ReviewCount int64
	CreatedAt   time.Time
}

type UserService interface {
	Register(ctx context.Context, name, email, password, city string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	GetPublicProfile(ctx context.Context, id uint64) (*PublicProfile, error)
	Get(ctx context.Context, id uint64) (*model.User, error)
	UpdateProfile(ctx context.Context, id uint64, upd ProfileUpdate) (*model.User, error)
	List(ctx context.Context, callerRole model.Role, limit, offset int) ([]model.User, int64, error)
	ChangeRole(ctx context.Context, callerID uint64, callerRole model.Role, targetID uint64, role string) (*model.User, error)
	Delete(ctx context.Context, callerRole model.Role, targetID uint64) error
}

type userService struct {
	users     repository.UserRepository
	reviews   repository.ReviewRepository
	tx        repository.TxRunner
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewUserService(users repository.UserRepository, reviews repository.ReviewRepository, tx repository.TxRunner, jwtSecret string, jwtTTL time.Duration) UserService {
	return &userService{users: users, reviews: reviews, tx: tx, jwtSecret: []byte(jwtSecret), jwtTTL: jwtTTL}
}

func (s *userService) Register(ctx context.Context, name, email, password, city string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	city = strings.TrimSpace(city)
	if name == "" || email == "" || city == "" {
		return nil, invalidInput("name, email and city are required")
	}
	if len(password) < 8 {
		return nil, invalidInput("password must be at least 8 characters")
	}
	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrConflict
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		City:         city,
		Role:         model.RoleUser,
		MannerTemp:   model.DefaultMannerTemp,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies the credentials and mints a signed token carrying the
// user id as subject and the role as a claim.
func (s *userService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(u.ID, 10),
		"role": string(u.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.jwtTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *userService) GetPublicProfile(ctx context.Context, id uint64) (*PublicProfile, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	cnt, err := s.reviews.CountForUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PublicProfile{
		ID:          u.ID,
		Name:        u.Name,
		City:        u.City,
		District:    u.District,
		Image:       u.Image,
		MannerTemp:  u.MannerTemp,
		ReviewCount: cnt,
		CreatedAt:   u.CreatedAt,
	}, nil
}

func (s *userService) Get(ctx context.Context, id uint64) (*model.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id uint64, upd ProfileUpdate) (*model.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if upd.Name != nil {
		n := strings.TrimSpace(*upd.Name)
		if n == "" {
			return nil, invalidInput("name must be a non-empty string")
		}
		u.Name = n
	}
	if upd.Phone != nil {
		u.Phone = upd.Phone
	}
	if upd.City != nil {
		c := strings.TrimSpace(*upd.City)
		if c == "" {
			return nil, invalidInput("city must be a non-empty string")
		}
		u.City = c
	}
	if upd.District != nil {
		u.District = upd.District
	}
	if upd.Image != nil {
		u.Image = upd.Image
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) List(ctx context.Context, callerRole model.Role, limit, offset int) ([]model.User, int64, error) {
	if callerRole != model.RoleAdmin {
		return nil, 0, ErrForbidden
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.List(ctx, limit, offset)
}

func (s *userService) ChangeRole(ctx context.Context, callerID uint64, callerRole model.Role, targetID uint64, role string) (*model.User, error) {
	if callerRole != model.RoleAdmin {
		return nil, ErrForbidden
	}
	if callerID == targetID {
		return nil, invalidInput("cannot change your own role")
	}
	r := model.Role(role)
	if !r.Valid() {
		return nil, invalidInput("role must be one of: user, moderator, admin")
	}
	u, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.users.UpdateRole(ctx, targetID, r); err != nil {
		return nil, err
	}
	u.Role = r
	return u, nil
}

func (s *userService) Delete(ctx context.Context, callerRole model.Role, targetID uint64) error {
	if callerRole != model.RoleAdmin {
		return ErrForbidden
	}
	if _, err := s.users.FindByID(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.tx.InTx(ctx, func(tx *gorm.DB) error {
		return s.users.DeleteCascade(ctx, tx, targetID)
	})
}
