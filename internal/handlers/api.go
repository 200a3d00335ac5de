package handlers

import (
	"errors"
	"net/http"

	"todolist/internal/auth"
	dom "todolist/internal/domain"
	"todolist/internal/dto"
	"todolist/internal/service"

	"github.com/gin-gonic/gin"
)

// ItemAPI serves the JSON API. Routes sit behind auth.RequireUser.
type ItemAPI struct {
	svc *service.ItemService
}

func NewItemAPI(svc *service.ItemService) *ItemAPI {
	return &ItemAPI{svc: svc}
}

// List godoc
// @Summary      List the current user's items
// @Tags         items
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.ListItemsResponse
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /items [get]
func (h *ItemAPI) List(c *gin.Context) {
	u, _ := auth.CurrentUser(c)
	list, err := h.svc.List(c.Request.Context(), u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ListItemsResponse{Items: itemsToResponses(list)})
}

// Create godoc
// @Summary      Create an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateItemRequest  true  "Item body"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /items [post]
func (h *ItemAPI) Create(c *gin.Context) {
	u, _ := auth.CurrentUser(c)
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	it, err := h.svc.Create(c.Request.Context(), u.ID, req.Title, req.Due, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrTitleTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, itemToResponse(it))
}

// GetByID godoc
// @Summary      Get one of the current user's items
// @Tags         items
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Item ID"
// @Success      200  {object}  dto.ItemResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /items/{id} [get]
func (h *ItemAPI) GetByID(c *gin.Context) {
	u, _ := auth.CurrentUser(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	it, err := h.svc.GetOwned(c.Request.Context(), u.ID, id)
	if err != nil {
		// Foreign items look the same as missing ones.
		if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, itemToResponse(it))
}

// Delete godoc
// @Summary      Delete an item
// @Tags         items
// @Security     CookieAuth
// @Param        id   path  int  true  "Item ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /items/{id} [delete]
func (h *ItemAPI) Delete(c *gin.Context) {
	u, _ := auth.CurrentUser(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	err := h.svc.Delete(c.Request.Context(), u.ID, id)
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.Status(http.StatusNoContent)
	}
}

// Profile godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  map[string]string
// @Router       /profile [get]
func (h *ItemAPI) Profile(c *gin.Context) {
	u, _ := auth.CurrentUser(c)
	c.JSON(http.StatusOK, dto.UserResponse{ID: u.ID, Name: u.Name, Email: u.Email})
}

func parseID(c *gin.Context) (int64, bool) {
	id, ok := itemID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func itemToResponse(it dom.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:          it.ID,
		OwnerID:     it.OwnerID,
		Title:       it.Title,
		Description: it.Description,
		Due:         it.Due,
	}
}

func itemsToResponses(list []dom.Item) []dto.ItemResponse {
	out := make([]dto.ItemResponse, len(list))
	for i := range list {
		out[i] = itemToResponse(list[i])
	}
	return out
}
