package homebox

import (
	"time"

	"github.com/google/uuid"
)

// LoginResponse is the token grant returned by the users/login endpoint.
type LoginResponse struct {
	Token           string    `json:"token"`
	ExpiresAt       time.Time `json:"expiresAt"`
	AttachmentToken string    `json:"attachmentToken"`
}

// itemPage is the paginated envelope the assets endpoint wraps results in.
// Asset IDs are unique per instance, so Total is 0 or 1 in practice.
type itemPage struct {
	Items    []Item `json:"items"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	Total    int    `json:"total"`
}

// Item is one inventory item as Homebox returns it. The summary form from
// the assets endpoint omits Fields; the detail endpoint fills them in.
type Item struct {
	ID          uuid.UUID `json:"id"`
	AssetID     string    `json:"assetId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	Location    *Location `json:"location"`
	Labels      []Label   `json:"labels"`
	Fields      []Field   `json:"fields"`
}

// Location is the place an item is stored.
type Location struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Label is a user-defined tag on an item.
type Label struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Field is one custom attribute attached to an item. Homebox supports more
// value kinds than text, but labels only ever print the text form.
type Field struct {
	Name      string `json:"name"`
	TextValue string `json:"textValue"`
}
