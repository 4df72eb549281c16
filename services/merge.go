package services

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/aissouss/minishop-api/models"
	"github.com/aissouss/minishop-api/session"
)

// GuestCartItem is one entry of a guest cart accumulated client-side before
// login, typically in localStorage.
type GuestCartItem struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

// MergeResult summarizes a guest cart merge.
type MergeResult struct {
	ItemsAdded int
	Message    string
}

// MergeGuestCart folds guest cart entries into the session cart, in input
// order, with the same stock and availability checks as an interactive add.
// Entries that fail validation are skipped, not fatal: a guest cart may well
// reference products that sold out or disappeared since it was accumulated.
// Repeated product IDs compound onto the running session quantity and hit the
// same stock cap as everything else.
func (s *CartService) MergeGuestCart(ctx context.Context, sess *session.Session, items []GuestCartItem) (MergeResult, error) {
	if sess == nil {
		return MergeResult{}, errors.Wrap(models.ErrInvalidArgument, "session is required")
	}

	if len(items) == 0 {
		return MergeResult{Message: "Nothing to merge"}, nil
	}

	merged := 0
	for _, item := range items {
		if err := s.AddToCart(ctx, sess, item.ProductID, item.Quantity); err != nil {
			s.log.WithFields(logrus.Fields{
				"session_id": sess.ID,
				"product_id": item.ProductID,
				"quantity":   item.Quantity,
			}).WithError(err).Warn("skipped guest cart entry")
			continue
		}
		merged++
	}

	result := MergeResult{ItemsAdded: merged}
	switch {
	case merged == 1:
		result.Message = "1 item merged into your cart"
	case merged > 1:
		result.Message = fmt.Sprintf("%d items merged into your cart", merged)
	default:
		result.Message = "No items could be merged"
	}

	s.log.WithFields(logrus.Fields{
		"session_id":  sess.ID,
		"items_added": merged,
		"items_total": len(items),
	}).Info("guest cart merged")
	return result, nil
}
