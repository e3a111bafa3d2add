package cart

import (
	"context"
	"fmt"
)

// Service orchestrates cart operations and attaches the user-facing
// messages the voice flow reports back.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetCart(ctx context.Context, username string) (Cart, error) {
	c, err := s.repo.Get(ctx, username)
	if err != nil {
		return Cart{}, err
	}
	switch {
	case !c.IsReturningUser:
		c.Message = fmt.Sprintf("Welcome %s! Start shopping with voice commands.", username)
	case len(c.Items) > 0:
		c.Message = fmt.Sprintf("Welcome back %s! You have %d item(s) in your cart.", username, len(c.Items))
	default:
		c.Message = fmt.Sprintf("Welcome back %s!", username)
	}
	return c, nil
}

// AddResult is the ack returned for mutating cart calls.
type AddResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	CartCount int    `json:"cart_count"`
	Removed   int    `json:"removed_count,omitempty"`
}

func (s *Service) AddToCart(ctx context.Context, username string, item Item) (AddResult, error) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	count, err := s.repo.Add(ctx, username, item)
	if err != nil {
		return AddResult{}, err
	}
	return AddResult{
		Success:   true,
		Message:   fmt.Sprintf("Added %d x %s to %s's cart", item.Quantity, item.ProductName, username),
		CartCount: count,
	}, nil
}

func (s *Service) RemoveFromCart(ctx context.Context, username, productID, productName string) (AddResult, error) {
	removed, remaining, err := s.repo.Remove(ctx, username, productID, productName)
	if err != nil {
		return AddResult{}, err
	}
	label := productName
	if label == "" {
		label = productID
	}
	return AddResult{
		Success:   true,
		Message:   fmt.Sprintf("Removed %s from cart", label),
		CartCount: remaining,
		Removed:   removed,
	}, nil
}

func (s *Service) ClearCart(ctx context.Context, username string) (AddResult, error) {
	if err := s.repo.Clear(ctx, username); err != nil {
		return AddResult{}, err
	}
	return AddResult{
		Success:   true,
		Message:   fmt.Sprintf("%s's cart cleared successfully", username),
		CartCount: 0,
	}, nil
}
