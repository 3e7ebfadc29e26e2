package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKV struct {
	data   map[string]string
	getErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	value, ok := f.data[key]
	return value, ok, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string) error {
	f.data[key] = value
	return nil
}

func (f *fakeKV) Del(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func TestStore_SaveAndLoad(t *testing.T) {
	store := NewStore(newFakeKV())
	ctx := context.Background()

	saved := Cart{RestaurantID: "r1", RestaurantName: "Bir", Lines: []Line{
		{Item: kebab, Quantity: 2},
	}}
	require.NoError(t, store.Save(ctx, "u1", saved))

	loaded := store.Load(ctx, "u1")
	assert.Equal(t, saved, loaded)
}

func TestStore_LoadMissingIsEmpty(t *testing.T) {
	store := NewStore(newFakeKV())
	assert.True(t, store.Load(context.Background(), "nobody").Empty())
}

func TestStore_CorruptEntryFailsOpen(t *testing.T) {
	kv := newFakeKV()
	kv.data["cart:u1"] = "{not json"
	store := NewStore(kv)

	loaded := store.Load(context.Background(), "u1")
	assert.True(t, loaded.Empty())
	_, stillThere := kv.data["cart:u1"]
	assert.False(t, stillThere, "corrupt entry should be dropped")
}

func TestStore_BackendErrorFailsOpen(t *testing.T) {
	kv := newFakeKV()
	kv.getErr = errors.New("connection refused")
	store := NewStore(kv)

	loaded := store.Load(context.Background(), "u1")
	assert.True(t, loaded.Empty())
}

func TestStore_Clear(t *testing.T) {
	store := NewStore(newFakeKV())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "u1", Cart{RestaurantID: "r1", Lines: []Line{{Item: ayran, Quantity: 1}}}))
	require.NoError(t, store.Clear(ctx, "u1"))
	assert.True(t, store.Load(ctx, "u1").Empty())
}
