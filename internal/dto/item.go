package dto

// CreateItemForm is the form body for POST /create/.
type CreateItemForm struct {
	Title       string `form:"title"`
	Due         string `form:"due_str"`
	Description string `form:"description"`
}

// Field names the HTML forms must carry.
var (
	CreateItemFields = []string{"title", "due_str", "description"}
	LoginFields      = []string{"username", "password"}
	SignupFields     = []string{"username", "password", "email"}
)

type CreateItemRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=120"`
	Due         string `json:"due" binding:"max=100"` // free text, e.g. "2024-01-01" or "friday"
	Description string `json:"description" binding:"max=1000"`
}

type ItemResponse struct {
	ID          int64  `json:"id"`
	OwnerID     int64  `json:"owner_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Due         string `json:"due"`
}

type ListItemsResponse struct {
	Items []ItemResponse `json:"items"`
}
