package domain

// Item is a single to-do entry. Not tied to gin, Postgres or Redis.
// Due is free text as entered by the owner.
type Item struct {
	ID          int64
	OwnerID     int64
	Title       string
	Description string
	Due         string
}

// OwnedBy reports whether the item belongs to the given user.
func (i Item) OwnedBy(userID int64) bool {
	return userID != 0 && i.OwnerID == userID
}
