package cart

import (
	"errors"
	"math"
)

var (
	// ErrCrossRestaurantConflict means the cart already belongs to another
	// restaurant; the caller must confirm a clear-and-replace before retrying.
	ErrCrossRestaurantConflict = errors.New("cart belongs to another restaurant")
	// ErrInvalidItem rejects items with a missing id or non-positive price.
	ErrInvalidItem = errors.New("invalid menu item")
	// ErrLineNotFound rejects out-of-range line indexes.
	ErrLineNotFound = errors.New("cart line not found")
)

// ItemSnapshot is a frozen copy of a menu item. Carts never hold live
// references, so later menu edits do not change a cart in flight.
type ItemSnapshot struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
}

// Line is one cart entry. Quantity is always >= 1; a line whose quantity
// would drop to zero is removed instead.
type Line struct {
	Item     ItemSnapshot `json:"item"`
	Quantity int          `json:"quantity"`
}

// Cart holds the lines of a single restaurant. All lines share RestaurantID;
// mixing restaurants requires an explicit clear-and-replace.
type Cart struct {
	RestaurantID   string `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	Lines          []Line `json:"lines"`
}

// Empty reports whether the cart has no lines.
func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}

// Add puts one unit of the item into the cart. If a line for the same item
// already exists its quantity is incremented, otherwise a new line is
// appended. Adding from a different restaurant than the cart's fails with
// ErrCrossRestaurantConflict.
func (c Cart) Add(item ItemSnapshot, restaurantID, restaurantName string) (Cart, error) {
	if item.ID == "" || item.Price <= 0 {
		return c, ErrInvalidItem
	}
	if restaurantID == "" {
		return c, ErrInvalidItem
	}

	if !c.Empty() && c.RestaurantID != restaurantID {
		return c, ErrCrossRestaurantConflict
	}

	next := c
	next.RestaurantID = restaurantID
	next.RestaurantName = restaurantName

	next.Lines = append([]Line(nil), c.Lines...)
	for i, line := range next.Lines {
		if line.Item.ID == item.ID {
			next.Lines[i].Quantity++
			return next, nil
		}
	}

	next.Lines = append(next.Lines, Line{Item: item, Quantity: 1})
	return next, nil
}

// Replace clears the cart and adds the item, for the case where the user
// confirmed switching restaurants.
func (c Cart) Replace(item ItemSnapshot, restaurantID, restaurantName string) (Cart, error) {
	return Cart{}.Add(item, restaurantID, restaurantName)
}

// SetQuantity replaces the quantity of the line at index. The input is
// floored to an integer; zero or negative removes the line. When the last
// line goes, the restaurant binding is released too.
func (c Cart) SetQuantity(index int, qty float64) (Cart, error) {
	if index < 0 || index >= len(c.Lines) {
		return c, ErrLineNotFound
	}

	next := c
	next.Lines = append([]Line(nil), c.Lines...)

	floored := int(math.Floor(qty))
	if floored <= 0 {
		next.Lines = append(next.Lines[:index], next.Lines[index+1:]...)
		if len(next.Lines) == 0 {
			next = Cart{}
		}
		return next, nil
	}

	next.Lines[index].Quantity = floored
	return next, nil
}

// Subtotal sums price times quantity over all lines.
func (c Cart) Subtotal() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.Item.Price * float64(line.Quantity)
	}
	return total
}
