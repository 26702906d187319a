package models

// Comment is a single user comment on an item. Comments are append-only and
// addressed by position inside their parent item.
type Comment struct {
	User   string `json:"user"`
	UserID int64  `json:"user_id"`
	Text   string `json:"text"`
}

// Item is one postable product record. The ID is the key of the item inside
// the store document and is not serialized into the record itself.
type Item struct {
	ID          string    `json:"-"`
	PhotoID     string    `json:"photo_id"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Comments    []Comment `json:"comments"`
}

// Clone returns a deep copy so callers can't mutate stored comments.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	clone := *i
	clone.Comments = append([]Comment(nil), i.Comments...)
	return &clone
}
