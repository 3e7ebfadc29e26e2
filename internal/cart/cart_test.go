package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	kebab  = ItemSnapshot{ID: "m1", Name: "Adana Kebap", Price: 120}
	ayran  = ItemSnapshot{ID: "m2", Name: "Ayran", Price: 15}
	lahmac = ItemSnapshot{ID: "m3", Name: "Lahmacun", Price: 60}
)

func TestCart_Add(t *testing.T) {
	tests := []struct {
		name          string
		start         Cart
		item          ItemSnapshot
		restaurantID  string
		expectedError error
		expectedLines int
		expectedQty   int
	}{
		{
			name:          "first_item_binds_restaurant",
			start:         Cart{},
			item:          kebab,
			restaurantID:  "r1",
			expectedLines: 1,
			expectedQty:   1,
		},
		{
			name: "same_item_increments_quantity",
			start: Cart{RestaurantID: "r1", Lines: []Line{
				{Item: kebab, Quantity: 2},
			}},
			item:          kebab,
			restaurantID:  "r1",
			expectedLines: 1,
			expectedQty:   3,
		},
		{
			name: "new_item_appends_line",
			start: Cart{RestaurantID: "r1", Lines: []Line{
				{Item: kebab, Quantity: 1},
			}},
			item:          ayran,
			restaurantID:  "r1",
			expectedLines: 2,
			expectedQty:   1,
		},
		{
			name: "other_restaurant_conflicts",
			start: Cart{RestaurantID: "r1", Lines: []Line{
				{Item: kebab, Quantity: 1},
			}},
			item:          lahmac,
			restaurantID:  "r2",
			expectedError: ErrCrossRestaurantConflict,
		},
		{
			name:          "zero_price_rejected",
			start:         Cart{},
			item:          ItemSnapshot{ID: "m9", Name: "Bedava", Price: 0},
			restaurantID:  "r1",
			expectedError: ErrInvalidItem,
		},
		{
			name:          "missing_id_rejected",
			start:         Cart{},
			item:          ItemSnapshot{Name: "Gizli", Price: 10},
			restaurantID:  "r1",
			expectedError: ErrInvalidItem,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			next, err := testCase.start.Add(testCase.item, testCase.restaurantID, "Test Restoran")
			if testCase.expectedError != nil {
				assert.ErrorIs(t, err, testCase.expectedError)
				assert.Equal(t, testCase.start, next, "failed add must not change the cart")
				return
			}

			require.NoError(t, err)
			assert.Len(t, next.Lines, testCase.expectedLines)
			assert.Equal(t, testCase.restaurantID, next.RestaurantID)
			for _, line := range next.Lines {
				if line.Item.ID == testCase.item.ID {
					assert.Equal(t, testCase.expectedQty, line.Quantity)
				}
			}
		})
	}
}

func TestCart_Replace(t *testing.T) {
	start := Cart{RestaurantID: "r1", RestaurantName: "Eski", Lines: []Line{
		{Item: kebab, Quantity: 3},
	}}

	next, err := start.Replace(lahmac, "r2", "Yeni")
	require.NoError(t, err)
	assert.Equal(t, "r2", next.RestaurantID)
	assert.Len(t, next.Lines, 1)
	assert.Equal(t, lahmac.ID, next.Lines[0].Item.ID)
	assert.Equal(t, 1, next.Lines[0].Quantity)
}

func TestCart_SetQuantity(t *testing.T) {
	base := Cart{RestaurantID: "r1", Lines: []Line{
		{Item: kebab, Quantity: 2},
		{Item: ayran, Quantity: 1},
	}}

	tests := []struct {
		name          string
		index         int
		qty           float64
		expectedError error
		expectedLines int
		expectedQty   int
	}{
		{name: "replace_quantity", index: 0, qty: 5, expectedLines: 2, expectedQty: 5},
		{name: "fractional_floors_down", index: 0, qty: 2.9, expectedLines: 2, expectedQty: 2},
		{name: "zero_removes_line", index: 1, qty: 0, expectedLines: 1},
		{name: "negative_removes_line", index: 1, qty: -3, expectedLines: 1},
		{name: "below_one_removes_line", index: 0, qty: 0.4, expectedLines: 1},
		{name: "out_of_range", index: 2, qty: 1, expectedError: ErrLineNotFound},
		{name: "negative_index", index: -1, qty: 1, expectedError: ErrLineNotFound},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			next, err := base.SetQuantity(testCase.index, testCase.qty)
			if testCase.expectedError != nil {
				assert.ErrorIs(t, err, testCase.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Len(t, next.Lines, testCase.expectedLines)
			if testCase.expectedQty > 0 {
				assert.Equal(t, testCase.expectedQty, next.Lines[testCase.index].Quantity)
			}
		})
	}

	t.Run("removing_last_line_releases_restaurant", func(t *testing.T) {
		single := Cart{RestaurantID: "r1", RestaurantName: "Tek", Lines: []Line{
			{Item: kebab, Quantity: 1},
		}}
		next, err := single.SetQuantity(0, 0)
		require.NoError(t, err)
		assert.True(t, next.Empty())
		assert.Empty(t, next.RestaurantID)

		// A fresh cart may now bind to any restaurant.
		next, err = next.Add(lahmac, "r2", "Yeni")
		require.NoError(t, err)
		assert.Equal(t, "r2", next.RestaurantID)
	})
}

func TestCart_Subtotal(t *testing.T) {
	c := Cart{RestaurantID: "r1", Lines: []Line{
		{Item: kebab, Quantity: 2},  // 240
		{Item: ayran, Quantity: 4},  // 60
		{Item: lahmac, Quantity: 1}, // 60
	}}
	assert.InDelta(t, 360, c.Subtotal(), 1e-9)
	assert.Zero(t, Cart{}.Subtotal())
}

// All lines share one restaurant after any sequence of operations.
func TestCart_SingleRestaurantInvariant(t *testing.T) {
	c := Cart{}
	var err error

	c, err = c.Add(kebab, "r1", "Bir")
	require.NoError(t, err)
	c, err = c.Add(ayran, "r1", "Bir")
	require.NoError(t, err)
	c, err = c.Add(kebab, "r1", "Bir")
	require.NoError(t, err)

	_, err = c.Add(lahmac, "r2", "Iki")
	assert.ErrorIs(t, err, ErrCrossRestaurantConflict)

	c, err = c.SetQuantity(0, 1)
	require.NoError(t, err)

	// The binding is cart-level: a failed cross-restaurant add left it intact.
	assert.Equal(t, "r1", c.RestaurantID)
	assert.Len(t, c.Lines, 2)
}
