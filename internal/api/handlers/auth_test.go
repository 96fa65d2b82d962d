package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/api/dto"
	"stockroom/internal/api/services"
	"stockroom/internal/api/ws"
	"stockroom/internal/domain"
	"stockroom/internal/repository"
	"stockroom/internal/util"
)

type customValidator struct{ v *validator.Validate }

func (cv *customValidator) Validate(i interface{}) error { return cv.v.Struct(i) }

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &customValidator{v: validator.New()}
	return e
}

func seedSignInUser(t *testing.T, store repository.Store, username, password string) *domain.User {
	t.Helper()
	hashed, err := util.HashPassword(password)
	require.NoError(t, err)

	user := &domain.User{Username: username, Password: hashed, FirstName: "Test", LastName: "User"}
	require.NoError(t, store.Users().Create(context.Background(), user))
	return user
}

func TestAuthHandler_SignIn(t *testing.T) {
	store := repository.NewMemoryStore()
	handler := NewAuthHandler(store, "test-secret")
	e := newTestEcho()
	seedSignInUser(t, store, "alice", "secret123")

	post := func(body any) *httptest.ResponseRecorder {
		b, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", bytes.NewBuffer(b))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		require.NoError(t, handler.SignIn(e.NewContext(req, rec)))
		return rec
	}

	t.Run("invalid JSON returns 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		require.NoError(t, handler.SignIn(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation error returns 400", func(t *testing.T) {
		rec := post(map[string]string{"username": "ab"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong password returns 401", func(t *testing.T) {
		rec := post(map[string]string{"username": "alice", "password": "nope-nope"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid credentials return token and user", func(t *testing.T) {
		rec := post(map[string]string{"username": "alice", "password": "secret123"})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp dto.SignInResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		require.NotNil(t, resp.User)
		assert.Equal(t, "alice", resp.User.Username)
	})
}

func TestStatusHandler_GetStatus(t *testing.T) {
	e := newTestEcho()

	t.Run("memory backend reports non-persistent", func(t *testing.T) {
		handler := NewStatusHandler(repository.NewMemoryStore())
		req := httptest.NewRequest(http.MethodGet, "/status", nil)
		rec := httptest.NewRecorder()

		require.NoError(t, handler.GetStatus(e.NewContext(req, rec)))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "memory", resp["storage"])
		assert.Equal(t, false, resp["persistent"])
	})
}

func TestAssetHandler_EndToEnd(t *testing.T) {
	store := repository.NewMemoryStore()
	recorder := services.NewActivityService(store, ws.GetHub())
	handler := NewAssetHandler(store, recorder, nil)
	e := newTestEcho()
	ctx := context.Background()

	holder := seedSignInUser(t, store, "holder", "x")

	t.Run("create", func(t *testing.T) {
		body, _ := json.Marshal(dto.CreateAssetRequest{AssetTag: "E2E-1", Name: "Laptop", Category: "laptop"})
		req := httptest.NewRequest(http.MethodPost, "/api/assets", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		require.NoError(t, handler.CreateAsset(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("checkout via handler", func(t *testing.T) {
		asset, err := store.Assets().GetByTag(ctx, "E2E-1")
		require.NoError(t, err)

		body, _ := json.Marshal(dto.CheckoutRequest{UserID: holder.ID})
		req := httptest.NewRequest(http.MethodPost, "/api/assets/1/checkout", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("1")

		require.NoError(t, handler.CheckoutAsset(c))
		require.Equal(t, http.StatusOK, rec.Code)

		updated, err := store.Assets().Get(ctx, asset.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.AssetStatusDeployed, updated.Status)
	})

	t.Run("second checkout conflicts", func(t *testing.T) {
		body, _ := json.Marshal(dto.CheckoutRequest{UserID: holder.ID})
		req := httptest.NewRequest(http.MethodPost, "/api/assets/1/checkout", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("1")

		require.NoError(t, handler.CheckoutAsset(c))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("checkin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/assets/1/checkin", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("1")

		require.NoError(t, handler.CheckinAsset(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("stats", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/assets/stats", nil)
		rec := httptest.NewRecorder()

		require.NoError(t, handler.GetAssetStats(e.NewContext(req, rec)))
		require.Equal(t, http.StatusOK, rec.Code)

		var stats domain.AssetStats
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
		assert.Equal(t, 1, stats.Total)
		assert.Equal(t, 1, stats.Available)
	})

	t.Run("missing asset returns 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/assets/99", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("99")

		require.NoError(t, handler.GetAsset(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
