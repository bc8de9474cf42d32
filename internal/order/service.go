package order

import (
	"context"
	"fmt"

	"github.com/hiddenspringfield/shop-backend/internal/cart"
	"github.com/hiddenspringfield/shop-backend/internal/settings"
	"github.com/hiddenspringfield/shop-backend/pkg/logger"
)

// CartLoader hydrates a session cart.
type CartLoader interface {
	Load(ctx context.Context, session string) (*cart.Store, error)
}

// SettingsReader exposes the current theme record.
type SettingsReader interface {
	Current() settings.ThemeSettings
}

// Service composes orders for cart sessions against the configured links.
type Service interface {
	Compose(ctx context.Context, session, linkName string) (Result, error)
	Links(ctx context.Context) Links
}

type service struct {
	carts    CartLoader
	settings SettingsReader
	logg     *logger.Logger
}

// NewService wires the order composer to the cart and settings stores.
func NewService(carts CartLoader, settings SettingsReader, logg *logger.Logger) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart loader required")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings reader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{carts: carts, settings: settings, logg: logg}, nil
}

// Links parses the links of the current settings record.
func (s *service) Links(_ context.Context) Links {
	current := s.settings.Current()
	return NewLinks(current.OrderLink, current.SellerLinks)
}

func (s *service) Compose(ctx context.Context, session, linkName string) (Result, error) {
	store, err := s.carts.Load(ctx, session)
	if err != nil {
		return Result{}, err
	}
	if linkName == "" {
		linkName = GenericLinkName
	}

	res, err := Compose(store, s.Links(ctx).Get(linkName), linkName)
	if err != nil {
		return Result{}, err
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"link":  linkName,
		"kind":  res.Kind.String(),
		"items": store.TotalItems(),
		"total": store.TotalPrice().StringFixed(2),
	})
	s.logg.Info(ctx, "order composed")
	return res, nil
}
