package service

import (
	"context"
	"testing"
	"time"

	"github.com/bazary/bazary-backend/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func newUserFixture() (UserService, *fakeUserRepo) {
	users := newFakeUserRepo()
	reviews := newFakeReviewRepo()
	svc := NewUserService(users, reviews, fakeTxRunner{}, testJWTSecret, time.Hour)
	return svc, users
}

func TestRegisterSetsDefaults(t *testing.T) {
	svc, _ := newUserFixture()

	u, err := svc.Register(context.Background(), "Naina", "NAINA@Example.mg", "password123", "Antananarivo")
	require.NoError(t, err)
	assert.Equal(t, "naina@example.mg", u.Email)
	assert.Equal(t, model.RoleUser, u.Role)
	assert.Equal(t, model.DefaultMannerTemp, u.MannerTemp)
	assert.NotEqual(t, "password123", u.PasswordHash)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, _ := newUserFixture()

	_, err := svc.Register(context.Background(), "Naina", "naina@example.mg", "password123", "Antananarivo")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Autre", "naina@example.mg", "password456", "Toamasina")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegisterShortPassword(t *testing.T) {
	svc, _ := newUserFixture()

	_, err := svc.Register(context.Background(), "Naina", "naina@example.mg", "court", "Antananarivo")
	assert.Error(t, err)
}

func TestLoginMintsToken(t *testing.T) {
	svc, _ := newUserFixture()

	reg, err := svc.Register(context.Background(), "Naina", "naina@example.mg", "password123", "Antananarivo")
	require.NoError(t, err)

	u, token, err := svc.Login(context.Background(), "naina@example.mg", "password123")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, u.ID)

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "1", claims["sub"])
	assert.Equal(t, "user", claims["role"])
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newUserFixture()

	_, err := svc.Register(context.Background(), "Naina", "naina@example.mg", "password123", "Antananarivo")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "naina@example.mg", "mauvais-mdp")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "inconnu@example.mg", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangeRoleAdminOnly(t *testing.T) {
	svc, users := newUserFixture()
	admin := users.put(&model.User{Name: "Admin", Role: model.RoleAdmin})
	target := users.put(&model.User{Name: "Naina", Role: model.RoleUser})

	_, err := svc.ChangeRole(context.Background(), target.ID, model.RoleUser, admin.ID, "admin")
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.ChangeRole(context.Background(), admin.ID, model.RoleAdmin, target.ID, "moderator")
	require.NoError(t, err)
	assert.Equal(t, model.RoleModerator, got.Role)
}

func TestChangeOwnRoleFails(t *testing.T) {
	svc, users := newUserFixture()
	admin := users.put(&model.User{Name: "Admin", Role: model.RoleAdmin})

	_, err := svc.ChangeRole(context.Background(), admin.ID, model.RoleAdmin, admin.ID, "user")
	assert.Error(t, err)
}

func TestDeleteUserAdminOnly(t *testing.T) {
	svc, users := newUserFixture()
	target := users.put(&model.User{Name: "Naina", Role: model.RoleUser})

	err := svc.Delete(context.Background(), model.RoleModerator, target.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.Delete(context.Background(), model.RoleAdmin, target.ID)
	require.NoError(t, err)

	_, err = users.FindByID(context.Background(), target.ID)
	assert.Error(t, err)
}

func TestGetPublicProfileIncludesReviewCount(t *testing.T) {
	users := newFakeUserRepo()
	reviews := newFakeReviewRepo()
	svc := NewUserService(users, reviews, fakeTxRunner{}, testJWTSecret, time.Hour)

	u := users.put(&model.User{Name: "Naina", City: "Antananarivo", MannerTemp: 37.1})
	require.NoError(t, reviews.Create(context.Background(), &model.Review{
		ReviewerID: 2, ReviewedID: u.ID, ProductID: 10, Rating: 5,
	}))

	p, err := svc.GetPublicProfile(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Naina", p.Name)
	assert.Equal(t, 37.1, p.MannerTemp)
	assert.Equal(t, int64(1), p.ReviewCount)
}
