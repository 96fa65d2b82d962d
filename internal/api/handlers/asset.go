package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"

	"stockroom/internal/api/dto"
	"stockroom/internal/api/services"
	"stockroom/internal/domain"
	r "stockroom/internal/redis"
	"stockroom/internal/repository"
)

type AssetHandler struct {
	rdb             *goredis.Client
	assetService    *services.AssetService
	checkoutService *services.CheckoutService
}

func NewAssetHandler(store repository.Store, recorder *services.ActivityService, rdb *goredis.Client) *AssetHandler {
	return &AssetHandler{
		rdb:             rdb,
		assetService:    services.NewAssetService(store, recorder),
		checkoutService: services.NewCheckoutService(store, recorder),
	}
}

func (h *AssetHandler) invalidateStatsCache(ctx context.Context) {
	if h.rdb == nil {
		return
	}
	_ = r.StatsCache(h.rdb).Invalidate(ctx)
}

func (h *AssetHandler) GetAssets(c echo.Context) error {
	if status := c.QueryParam("status"); status != "" {
		s := domain.AssetStatus(status)
		if !s.Valid() {
			return ErrBadRequest(c, "invalid status filter")
		}
		assets, err := h.assetService.ListByStatus(c.Request().Context(), s)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(http.StatusOK, assets)
	}

	assets, err := h.assetService.List(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, assets)
}

func (h *AssetHandler) GetAsset(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return ErrBadRequest(c, "invalid asset id")
	}

	asset, err := h.assetService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) GetAssetByTag(c echo.Context) error {
	tag := c.Param("tag")
	if tag == "" {
		return ErrBadRequest(c, "asset tag is required")
	}

	asset, err := h.assetService.GetByTag(c.Request().Context(), tag)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, asset)
}

// GetAssetStats serves status counts, from the cache when one is wired.
func (h *AssetHandler) GetAssetStats(c echo.Context) error {
	ctx := c.Request().Context()

	if h.rdb != nil {
		if stats, err := r.StatsCache(h.rdb).Get(ctx); err == nil && stats != nil {
			return c.JSON(http.StatusOK, stats)
		}
	}

	stats, err := h.assetService.Stats(ctx)
	if err != nil {
		return serviceError(c, err)
	}

	if h.rdb != nil {
		_ = r.StatsCache(h.rdb).Set(ctx, stats)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *AssetHandler) CreateAsset(c echo.Context) error {
	var req dto.CreateAssetRequest
	if err := c.Bind(&req); err != nil {
		return ErrBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return ErrBadRequest(c, err.Error())
	}

	asset := &domain.Asset{
		AssetTag:     req.AssetTag,
		Name:         req.Name,
		Category:     req.Category,
		Status:       domain.AssetStatus(req.Status),
		Description:  req.Description,
		SerialNumber: req.SerialNumber,
		Model:        req.Model,
		Manufacturer: req.Manufacturer,
		Location:     req.Location,
		PurchaseDate: req.PurchaseDate,
		PurchaseCost: req.PurchaseCost,
		Department:   req.Department,
		KnoxID:       req.KnoxID,
		Notes:        req.Notes,
	}

	created, err := h.assetService.Create(c.Request().Context(), asset, actorFromContext(c))
	if err != nil {
		return serviceError(c, err)
	}

	h.invalidateStatsCache(c.Request().Context())
	return c.JSON(http.StatusCreated, created)
}

func (h *AssetHandler) UpdateAsset(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return ErrBadRequest(c, "invalid asset id")
	}

	var req dto.UpdateAssetRequest
	if err := c.Bind(&req); err != nil {
		return ErrBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return ErrBadRequest(c, err.Error())
	}

	in := services.UpdateAssetInput{
		AssetTag:     req.AssetTag,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		SerialNumber: req.SerialNumber,
		Model:        req.Model,
		Manufacturer: req.Manufacturer,
		Location:     req.Location,
		PurchaseDate: req.PurchaseDate,
		PurchaseCost: req.PurchaseCost,
		Department:   req.Department,
		KnoxID:       req.KnoxID,
		AssignedTo:   req.AssignedTo,
		Notes:        req.Notes,
	}
	if req.Status != nil {
		status := domain.AssetStatus(*req.Status)
		in.Status = &status
	}

	updated, err := h.assetService.Update(c.Request().Context(), id, in, actorFromContext(c))
	if err != nil {
		return serviceError(c, err)
	}

	h.invalidateStatsCache(c.Request().Context())
	return c.JSON(http.StatusOK, updated)
}

func (h *AssetHandler) DeleteAsset(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return ErrBadRequest(c, "invalid asset id")
	}

	if err := h.assetService.Delete(c.Request().Context(), id, actorFromContext(c)); err != nil {
		return serviceError(c, err)
	}

	h.invalidateStatsCache(c.Request().Context())
	return SuccessResponse(c, "asset deleted")
}

func (h *AssetHandler) CheckoutAsset(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return ErrBadRequest(c, "invalid asset id")
	}

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return ErrBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return ErrBadRequest(c, err.Error())
	}

	asset, err := h.checkoutService.Checkout(c.Request().Context(), id, req.UserID, req.ExpectedCheckinDate, req.Notes)
	if err != nil {
		return serviceError(c, err)
	}

	h.invalidateStatsCache(c.Request().Context())
	return c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) CheckinAsset(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return ErrBadRequest(c, "invalid asset id")
	}

	asset, err := h.checkoutService.Checkin(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}

	h.invalidateStatsCache(c.Request().Context())
	return c.JSON(http.StatusOK, asset)
}
