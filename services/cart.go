package services

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/aissouss/minishop-api/models"
	"github.com/aissouss/minishop-api/session"
)

// Session attribute keys the cart service owns.
const (
	SessionKeyCart      = "cart"
	SessionKeyCartCount = "cartCount"
)

// CartService binds carts to sessions and routes every mutation through the
// catalog's stock checks. It holds the catalog handle by injection; there is
// exactly one instance per process, built in main and passed to handlers.
type CartService struct {
	catalog models.ProductFinder
	log     *logrus.Entry
}

func NewCartService(catalog models.ProductFinder) *CartService {
	return &CartService{
		catalog: catalog,
		log:     logrus.WithField("component", "cart_service"),
	}
}

// GetOrCreateCart returns the session's cart, attaching a fresh empty one if
// the session does not carry one yet.
func (s *CartService) GetOrCreateCart(sess *session.Session) (*models.Cart, error) {
	if sess == nil {
		return nil, errors.Wrap(models.ErrInvalidArgument, "session is required")
	}

	if v, ok := sess.Get(SessionKeyCart); ok {
		if cart, ok := v.(*models.Cart); ok {
			s.updateCartCount(sess, cart)
			return cart, nil
		}
	}

	cart := models.NewCart()
	sess.Set(SessionKeyCart, cart)
	s.updateCartCount(sess, cart)
	s.log.WithField("session_id", sess.ID).Info("created new cart in session")
	return cart, nil
}

// AddToCart resolves the product and adds the quantity to the session cart.
// The cart is left untouched when any check fails.
func (s *CartService) AddToCart(ctx context.Context, sess *session.Session, productID uint, quantity int) error {
	if sess == nil {
		return errors.Wrap(models.ErrInvalidArgument, "session is required")
	}
	if quantity <= 0 {
		return errors.Wrapf(models.ErrInvalidArgument, "quantity must be positive, got %d", quantity)
	}

	product, err := s.catalog.FindProduct(ctx, productID)
	if err != nil {
		return err
	}
	if !product.Active {
		return errors.Wrapf(models.ErrUnavailable, "product %q is not for sale", product.Name)
	}
	if quantity > product.Stock {
		return errors.Wrapf(models.ErrInsufficientStock, "requested %d of %q, %d in stock", quantity, product.Name, product.Stock)
	}

	cart, err := s.GetOrCreateCart(sess)
	if err != nil {
		return err
	}
	if err := cart.AddProduct(product, quantity); err != nil {
		return err
	}

	s.updateCartCount(sess, cart)
	s.log.WithFields(logrus.Fields{
		"session_id": sess.ID,
		"product_id": productID,
		"quantity":   quantity,
	}).Info("added product to cart")
	return nil
}

// UpdateQuantity sets the absolute quantity for a product in the cart.
// A quantity <= 0 removes the item instead.
func (s *CartService) UpdateQuantity(ctx context.Context, sess *session.Session, productID uint, quantity int) error {
	if sess == nil {
		return errors.Wrap(models.ErrInvalidArgument, "session is required")
	}
	if quantity <= 0 {
		return s.RemoveFromCart(sess, productID)
	}

	cart, err := s.GetOrCreateCart(sess)
	if err != nil {
		return err
	}
	if err := cart.UpdateQuantity(ctx, s.catalog, productID, quantity); err != nil {
		return err
	}

	s.updateCartCount(sess, cart)
	s.log.WithFields(logrus.Fields{
		"session_id": sess.ID,
		"product_id": productID,
		"quantity":   quantity,
	}).Info("updated cart quantity")
	return nil
}

// RemoveFromCart removes the product. Removing an absent product succeeds.
func (s *CartService) RemoveFromCart(sess *session.Session, productID uint) error {
	cart, err := s.GetOrCreateCart(sess)
	if err != nil {
		return err
	}

	cart.RemoveProduct(productID)
	s.updateCartCount(sess, cart)
	s.log.WithFields(logrus.Fields{
		"session_id": sess.ID,
		"product_id": productID,
	}).Info("removed product from cart")
	return nil
}

// ClearCart empties the session cart.
func (s *CartService) ClearCart(sess *session.Session) error {
	cart, err := s.GetOrCreateCart(sess)
	if err != nil {
		return err
	}

	cart.Clear()
	s.updateCartCount(sess, cart)
	s.log.WithField("session_id", sess.ID).Info("cart cleared")
	return nil
}

// ValidateCart reconciles the cart against current stock and returns the
// adjustment messages, if any.
func (s *CartService) ValidateCart(ctx context.Context, sess *session.Session) ([]string, error) {
	cart, err := s.GetOrCreateCart(sess)
	if err != nil {
		return nil, err
	}

	messages, err := cart.ValidateStock(ctx, s.catalog)
	if err != nil {
		return nil, err
	}

	s.updateCartCount(sess, cart)
	if len(messages) > 0 {
		s.log.WithFields(logrus.Fields{
			"session_id":  sess.ID,
			"adjustments": len(messages),
		}).Info("cart validated with adjustments")
	}
	return messages, nil
}

// GetCartItemCount reads the cached item-count projection. Cheap enough for a
// badge on every page; 0 when the session has no cart yet.
func (s *CartService) GetCartItemCount(sess *session.Session) int {
	if sess == nil {
		return 0
	}
	if v, ok := sess.Get(SessionKeyCartCount); ok {
		if count, ok := v.(int); ok {
			return count
		}
	}
	return 0
}

func (s *CartService) updateCartCount(sess *session.Session, cart *models.Cart) {
	if sess == nil || cart == nil {
		return
	}
	sess.Set(SessionKeyCartCount, cart.ItemCount())
}
