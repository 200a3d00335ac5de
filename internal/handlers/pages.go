package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"todolist/internal/auth"
	"todolist/internal/dto"
	"todolist/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	pathHome   = "/home/"
	pathLogin  = "/login/"
	pathSignup = "/signup"
)

const (
	msgNotLoggedIn  = "You are not logged in. To access most of the functionality of this site you will need to log in."
	msgItemAdded    = "Your item has been added successfully!"
	msgItemDeleted  = "Your item has been deleted successfully."
	msgTitleTaken   = "An item with that title already exists. Please pick another title."
	msgProfileLogin = "To view your profile please log in first."
	msgItemNotFound = "That item does not exist."
)

// PageHandler serves the item pages.
type PageHandler struct {
	items *service.ItemService
}

func NewPageHandler(items *service.ItemService) *PageHandler {
	return &PageHandler{items: items}
}

// Home lists the current user's items.
func (h *PageHandler) Home(c *gin.Context) Result {
	u, ok := auth.CurrentUser(c)
	if !ok {
		return redirect(pathLogin, msgNotLoggedIn)
	}
	list, err := h.items.List(c.Request.Context(), u.ID)
	if err != nil {
		return internalError(c, "list items", err)
	}
	return render("index.html", gin.H{"title": "Home", "items": list, "greeting": u.Name})
}

func (h *PageHandler) CreateForm(c *gin.Context) Result {
	if _, ok := auth.CurrentUser(c); !ok {
		return redirect(pathLogin, msgNotLoggedIn)
	}
	return render("create.html", gin.H{"title": "New item"})
}

func (h *PageHandler) Create(c *gin.Context) Result {
	u, ok := auth.CurrentUser(c)
	if !ok {
		return redirect(pathLogin, msgNotLoggedIn)
	}
	if !hasFields(c, dto.CreateItemFields) {
		return badForm()
	}
	var form dto.CreateItemForm
	if err := c.ShouldBind(&form); err != nil {
		return badForm()
	}

	_, err := h.items.Create(c.Request.Context(), u.ID, form.Title, form.Due, form.Description)
	if errors.Is(err, service.ErrTitleTaken) {
		return render("create.html", gin.H{
			"title":            "New item",
			"form_title":       form.Title,
			"form_due":         form.Due,
			"form_description": form.Description,
		}, msgTitleTaken)
	}
	if err != nil {
		return internalError(c, "create item", err)
	}
	return redirect(pathHome, msgItemAdded)
}

// DeleteConfirm shows the confirmation step. Non-owners are sent home
// without a message.
func (h *PageHandler) DeleteConfirm(c *gin.Context) Result {
	u, ok := auth.CurrentUser(c)
	if !ok {
		return redirect(pathLogin, msgNotLoggedIn)
	}
	id, ok := itemID(c)
	if !ok {
		return failure(http.StatusNotFound, msgItemNotFound)
	}
	it, err := h.items.GetOwned(c.Request.Context(), u.ID, id)
	switch {
	case errors.Is(err, service.ErrNotFound):
		return failure(http.StatusNotFound, msgItemNotFound)
	case errors.Is(err, service.ErrForbidden):
		return redirect(pathHome)
	case err != nil:
		return internalError(c, "get item", err)
	}
	return render("delete.html", gin.H{"title": "Delete item", "item": it})
}

// Delete executes the deletion. Ownership is checked again here, not
// only on the confirmation page.
func (h *PageHandler) Delete(c *gin.Context) Result {
	u, ok := auth.CurrentUser(c)
	if !ok {
		return redirect(pathLogin, msgNotLoggedIn)
	}
	id, ok := itemID(c)
	if !ok {
		return failure(http.StatusNotFound, msgItemNotFound)
	}
	err := h.items.Delete(c.Request.Context(), u.ID, id)
	switch {
	case errors.Is(err, service.ErrNotFound):
		return failure(http.StatusNotFound, msgItemNotFound)
	case errors.Is(err, service.ErrForbidden):
		return redirect(pathHome)
	case err != nil:
		return internalError(c, "delete item", err)
	}
	return redirect(pathHome, msgItemDeleted)
}

func (h *PageHandler) About(c *gin.Context) Result {
	return render("about.html", gin.H{"title": "About"})
}

func (h *PageHandler) Profile(c *gin.Context) Result {
	u, ok := auth.CurrentUser(c)
	if !ok {
		return redirect(pathLogin, msgProfileLogin)
	}
	return render("profile.html", gin.H{"title": "Profile", "email": u.Email, "name": u.Name})
}

func itemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
