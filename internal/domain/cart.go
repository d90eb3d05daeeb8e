package domain

import "time"

// CartKind distinguishes the two cart variants sharing one storage layout.
type CartKind string

const (
	KindProductCart CartKind = "product"
	KindSessionCart CartKind = "session"
)

// Cart is the server-authoritative snapshot returned by every cart endpoint.
// Totals are always recomputed server-side; clients never derive them.
type Cart struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice float64    `json:"total_price"`
}

type CartItem struct {
	CartItemID int64    `json:"cart_item_id" bson:"cart_item_id"`
	ProductID  int64    `json:"product_id" bson:"product_id"`
	Quantity   int      `json:"quantity" bson:"quantity"`
	Price      float64  `json:"price" bson:"price"`
	Name       string   `json:"name" bson:"name"`
	Images     []string `json:"images" bson:"images"`
}

// SessionCart mirrors Cart for booked training sessions. TotalItems is the
// item count, not a quantity sum: a session can be held at most once.
type SessionCart struct {
	Items      []SessionCartItem `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPrice float64           `json:"total_price"`
}

type SessionCartItem struct {
	CartItemID  int64   `json:"cart_item_id" bson:"cart_item_id"`
	SessionID   int64   `json:"session_id" bson:"session_id"`
	ClassType   string  `json:"class_type" bson:"class_type"`
	TrainerName string  `json:"trainer_name" bson:"trainer_name"`
	Date        string  `json:"date" bson:"date"`
	StartTime   string  `json:"start_time" bson:"start_time"`
	EndTime     string  `json:"end_time" bson:"end_time"`
	Price       float64 `json:"price" bson:"price"`
}

// StoredCart is the mongo document backing both cart kinds. NextItemID is a
// per-document counter so cart_item_id is unique within a snapshot.
type StoredCart struct {
	ID         string            `bson:"_id,omitempty"`
	UserID     string            `bson:"user_id"`
	Kind       CartKind          `bson:"kind"`
	Items      []CartItem        `bson:"items,omitempty"`
	Sessions   []SessionCartItem `bson:"sessions,omitempty"`
	NextItemID int64             `bson:"next_item_id"`
	CreatedAt  time.Time         `bson:"created_at"`
	UpdatedAt  time.Time         `bson:"updated_at"`
}

// ProductSnapshot builds the API cart shape from the stored document.
func (c *StoredCart) ProductSnapshot() *Cart {
	snap := &Cart{Items: []CartItem{}}
	for _, it := range c.Items {
		snap.Items = append(snap.Items, it)
		snap.TotalItems += it.Quantity
		snap.TotalPrice += it.Price * float64(it.Quantity)
	}
	return snap
}

// SessionSnapshot builds the API session-cart shape from the stored document.
func (c *StoredCart) SessionSnapshot() *SessionCart {
	snap := &SessionCart{Items: []SessionCartItem{}}
	for _, it := range c.Sessions {
		snap.Items = append(snap.Items, it)
		snap.TotalItems++
		snap.TotalPrice += it.Price
	}
	return snap
}
