package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aissouss/minishop-api/models"
	"github.com/aissouss/minishop-api/services"
	"github.com/aissouss/minishop-api/session"
)

type fakeCatalog struct {
	products map[uint]*models.Product
	failWith error
}

func (f *fakeCatalog) FindProduct(_ context.Context, productID uint) (*models.Product, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	p, ok := f.products[productID]
	if !ok {
		return nil, errors.Wrapf(models.ErrNotFound, "product %d", productID)
	}
	clone := *p
	return &clone, nil
}

func setup(t *testing.T) (*services.CartService, *fakeCatalog, *session.Session) {
	t.Helper()
	catalog := &fakeCatalog{products: map[uint]*models.Product{
		1: {ID: 1, Name: "Widget", PriceCents: 250, Stock: 5, Active: true},
		2: {ID: 2, Name: "Gadget", PriceCents: 500, Stock: 3, Active: true},
		3: {ID: 3, Name: "Relic", PriceCents: 900, Stock: 4, Active: false},
	}}
	carts := services.NewCartService(catalog)
	sess := session.NewStore(time.Hour).Create()
	return carts, catalog, sess
}

func TestGetOrCreateCart(t *testing.T) {
	carts, _, sess := setup(t)

	cart, err := carts.GetOrCreateCart(sess)
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.True(t, cart.IsEmpty())

	again, err := carts.GetOrCreateCart(sess)
	require.NoError(t, err)
	assert.Same(t, cart, again, "same session must keep the same cart")
}

func TestGetOrCreateCartNilSession(t *testing.T) {
	carts, _, _ := setup(t)

	_, err := carts.GetOrCreateCart(nil)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestAddToCart(t *testing.T) {
	ctx := context.Background()
	carts, catalog, sess := setup(t)

	require.NoError(t, carts.AddToCart(ctx, sess, 1, 2))
	cart, err := carts.GetOrCreateCart(sess)
	require.NoError(t, err)
	assert.Equal(t, 2, cart.GetItem(1).Quantity)

	t.Run("unknown product", func(t *testing.T) {
		err := carts.AddToCart(ctx, sess, 99, 1)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("inactive product", func(t *testing.T) {
		err := carts.AddToCart(ctx, sess, 3, 1)
		assert.ErrorIs(t, err, models.ErrUnavailable)
	})

	t.Run("insufficient stock", func(t *testing.T) {
		err := carts.AddToCart(ctx, sess, 2, 4)
		assert.ErrorIs(t, err, models.ErrInsufficientStock)
		assert.False(t, cart.ContainsProduct(2), "failed add must leave the cart untouched")
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		err := carts.AddToCart(ctx, sess, 1, 0)
		assert.ErrorIs(t, err, models.ErrInvalidArgument)
	})

	t.Run("catalog down", func(t *testing.T) {
		catalog.failWith = errors.Wrap(models.ErrDependencyFailure, "connection refused")
		defer func() { catalog.failWith = nil }()
		err := carts.AddToCart(ctx, sess, 1, 1)
		assert.ErrorIs(t, err, models.ErrDependencyFailure)
		assert.Equal(t, 2, cart.GetItem(1).Quantity)
	})
}

func TestUpdateQuantityDelegatesToRemoveOnZero(t *testing.T) {
	ctx := context.Background()
	carts, _, sess := setup(t)
	require.NoError(t, carts.AddToCart(ctx, sess, 1, 2))

	require.NoError(t, carts.UpdateQuantity(ctx, sess, 1, 0))
	cart, err := carts.GetOrCreateCart(sess)
	require.NoError(t, err)
	assert.False(t, cart.ContainsProduct(1))
	assert.Equal(t, 0, carts.GetCartItemCount(sess))
}

func TestStockCapScenario(t *testing.T) {
	// Product 1 has stock 5: add 3, add 3 again fails cumulatively,
	// absolute update to 5 passes, to 6 fails.
	ctx := context.Background()
	carts, _, sess := setup(t)

	require.NoError(t, carts.AddToCart(ctx, sess, 1, 3))
	assert.ErrorIs(t, carts.AddToCart(ctx, sess, 1, 3), models.ErrInsufficientStock)
	require.NoError(t, carts.UpdateQuantity(ctx, sess, 1, 5))
	assert.ErrorIs(t, carts.UpdateQuantity(ctx, sess, 1, 6), models.ErrInsufficientStock)

	cart, err := carts.GetOrCreateCart(sess)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.GetItem(1).Quantity)
}

func TestItemCountProjection(t *testing.T) {
	ctx := context.Background()
	carts, _, sess := setup(t)

	assert.Equal(t, 0, carts.GetCartItemCount(sess), "no cart yet reads as zero")

	require.NoError(t, carts.AddToCart(ctx, sess, 1, 2))
	assert.Equal(t, 2, carts.GetCartItemCount(sess))

	require.NoError(t, carts.AddToCart(ctx, sess, 2, 3))
	assert.Equal(t, 5, carts.GetCartItemCount(sess))

	require.NoError(t, carts.RemoveFromCart(sess, 2))
	assert.Equal(t, 2, carts.GetCartItemCount(sess))

	require.NoError(t, carts.ClearCart(sess))
	assert.Equal(t, 0, carts.GetCartItemCount(sess))
}

func TestGetCartItemCountNilSession(t *testing.T) {
	carts, _, _ := setup(t)
	assert.Equal(t, 0, carts.GetCartItemCount(nil))
}

func TestValidateCart(t *testing.T) {
	ctx := context.Background()
	carts, catalog, sess := setup(t)
	require.NoError(t, carts.AddToCart(ctx, sess, 1, 5))
	require.NoError(t, carts.AddToCart(ctx, sess, 2, 3))

	catalog.products[1].Stock = 2
	catalog.products[2].Stock = 0

	messages, err := carts.ValidateCart(ctx, sess)
	require.NoError(t, err)
	assert.Len(t, messages, 2)
	assert.Equal(t, 2, carts.GetCartItemCount(sess), "projection must follow the adjusted cart")

	messages, err = carts.ValidateCart(ctx, sess)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestValidateCartDependencyFailure(t *testing.T) {
	ctx := context.Background()
	carts, catalog, sess := setup(t)
	require.NoError(t, carts.AddToCart(ctx, sess, 1, 1))

	catalog.failWith = errors.Wrap(models.ErrDependencyFailure, "timeout")
	_, err := carts.ValidateCart(ctx, sess)
	assert.ErrorIs(t, err, models.ErrDependencyFailure)
}
