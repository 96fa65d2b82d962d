package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stockroom/internal/api/dto"
	"stockroom/internal/api/services"
	"stockroom/internal/domain"
	"stockroom/internal/repository"
)

type ResourceHandler struct {
	resourceService   *services.ResourceService
	assignmentService *services.AssignmentService
}

func NewResourceHandler(store repository.Store, recorder *services.ActivityService) *ResourceHandler {
	return &ResourceHandler{
		resourceService:   services.NewResourceService(store, recorder),
		assignmentService: services.NewAssignmentService(store, recorder),
	}
}

func (h *ResourceHandler) GetResources(c echo.Context) error {
	if kind := c.QueryParam("kind"); kind != "" {
		resources, err := h.resourceService.ListByKind(c.Request().Context(), domain.ResourceKind(kind))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(http.StatusOK, resources)
	}

	resources, err := h.resourceService.List(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, resources)
}

func (h *ResourceHandler) GetResource(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return ErrBadRequest(c, "invalid resource id")
	}

	resource, err := h.resourceService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, resource)
}

func (h *ResourceHandler) CreateResource(c echo.Context) error {
	var req dto.CreateResourceRequest
	if err := c.Bind(&req); err != nil {
		return ErrBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return ErrBadRequest(c, err.Error())
	}

	resource, err := h.resourceService.Create(c.Request().Context(), services.CreateResourceInput{
		Kind:           domain.ResourceKind(req.Kind),
		Name:           req.Name,
		Category:       req.Category,
		Quantity:       req.Quantity,
		Model:          req.Model,
		Manufacturer:   req.Manufacturer,
		Location:       req.Location,
		LicenseKey:     req.LicenseKey,
		ExpirationDate: req.ExpirationDate,
		Notes:          req.Notes,
	}, actorFromContext(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, resource)
}

func (h *ResourceHandler) UpdateResource(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return ErrBadRequest(c, "invalid resource id")
	}

	var req dto.UpdateResourceRequest
	if err := c.Bind(&req); err != nil {
		return ErrBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return ErrBadRequest(c, err.Error())
	}

	resource, err := h.resourceService.Update(c.Request().Context(), id, services.UpdateResourceInput{
		Name:           req.Name,
		Category:       req.Category,
		TotalQuantity:  req.Quantity,
		Model:          req.Model,
		Manufacturer:   req.Manufacturer,
		Location:       req.Location,
		LicenseKey:     req.LicenseKey,
		ExpirationDate: req.ExpirationDate,
		Notes:          req.Notes,
	}, actorFromContext(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, resource)
}

func (h *ResourceHandler) DeleteResource(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return ErrBadRequest(c, "invalid resource id")
	}

	if err := h.resourceService.Delete(c.Request().Context(), id, actorFromContext(c)); err != nil {
		return serviceError(c, err)
	}
	return SuccessResponse(c, "resource deleted")
}

func (h *ResourceHandler) GetAssignments(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return ErrBadRequest(c, "invalid resource id")
	}

	assignments, err := h.assignmentService.List(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, assignments)
}

func (h *ResourceHandler) AssignResource(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return ErrBadRequest(c, "invalid resource id")
	}

	var req dto.AssignRequest
	if err := c.Bind(&req); err != nil {
		return ErrBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return ErrBadRequest(c, err.Error())
	}

	assignment, err := h.assignmentService.Assign(c.Request().Context(), services.AssignInput{
		ResourceID:   id,
		AssignedTo:   req.AssignedTo,
		Quantity:     req.Quantity,
		KnoxID:       req.KnoxID,
		SerialNumber: req.SerialNumber,
		Notes:        req.Notes,
	}, actorFromContext(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, assignment)
}

func (h *ResourceHandler) ReturnAssignment(c echo.Context) error {
	id, err := pathID(c, "assignment_id")
	if err != nil {
		return ErrBadRequest(c, "invalid assignment id")
	}

	assignment, err := h.assignmentService.Return(c.Request().Context(), id, actorFromContext(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, assignment)
}
