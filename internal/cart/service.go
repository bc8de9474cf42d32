package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hiddenspringfield/shop-backend/pkg/db/models"
	pkgerrors "github.com/hiddenspringfield/shop-backend/pkg/errors"
	"github.com/hiddenspringfield/shop-backend/pkg/logger"
)

// ProductLookup resolves catalog products for add operations.
type ProductLookup interface {
	Get(ctx context.Context, id string) (*models.Product, error)
}

// Snapshot is the read model returned to HTTP callers.
type Snapshot struct {
	Session    string          `json:"session"`
	Lines      []Line          `json:"lines"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// Service binds a Store to a Mirror per cart session. Every mutation hydrates
// the session, applies the change and writes the full snapshot back.
type Service interface {
	View(ctx context.Context, session string) (*Snapshot, error)
	Add(ctx context.Context, session, productID, optionLabel string) (*Snapshot, error)
	UpdateQuantity(ctx context.Context, session string, key LineKey, qty int) (*Snapshot, error)
	Remove(ctx context.Context, session string, key LineKey) (*Snapshot, error)
	Clear(ctx context.Context, session string) (*Snapshot, error)
	Load(ctx context.Context, session string) (*Store, error)
}

type service struct {
	mu       sync.Mutex
	mirror   Mirror
	products ProductLookup
	logg     *logger.Logger
}

// NewService wires the cart session service.
func NewService(mirror Mirror, products ProductLookup, logg *logger.Logger) (Service, error) {
	if mirror == nil {
		return nil, fmt.Errorf("cart mirror required")
	}
	if products == nil {
		return nil, fmt.Errorf("product lookup required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{mirror: mirror, products: products, logg: logg}, nil
}

// ValidateSession accepts canonical lowercase UUIDs only.
func ValidateSession(session string) error {
	session = strings.TrimSpace(session)
	if session == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart session is required")
	}
	parsed, err := uuid.Parse(session)
	if err != nil || parsed.String() != session {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart session is invalid")
	}
	return nil
}

func (s *service) View(ctx context.Context, session string) (*Snapshot, error) {
	store, err := s.Load(ctx, session)
	if err != nil {
		return nil, err
	}
	return snapshotOf(session, store), nil
}

func (s *service) Add(ctx context.Context, session, productID, optionLabel string) (*Snapshot, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "productId is required")
	}
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	snap := ProductFromModel(*product)
	optionLabel = strings.TrimSpace(optionLabel)
	if optionLabel != "" {
		if _, ok := snap.OptionPrice(optionLabel); !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown pricing option").
				WithDetails(map[string]any{"productId": productID, "option": optionLabel})
		}
	}

	return s.mutate(ctx, session, func(store *Store) {
		store.Add(snap, optionLabel)
	})
}

func (s *service) UpdateQuantity(ctx context.Context, session string, key LineKey, qty int) (*Snapshot, error) {
	return s.mutate(ctx, session, func(store *Store) {
		store.UpdateQuantity(key, qty)
	})
}

func (s *service) Remove(ctx context.Context, session string, key LineKey) (*Snapshot, error) {
	return s.mutate(ctx, session, func(store *Store) {
		store.Remove(key)
	})
}

func (s *service) Clear(ctx context.Context, session string) (*Snapshot, error) {
	if err := ValidateSession(session); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mirror.Delete(ctx, session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return snapshotOf(session, New()), nil
}

// Load hydrates a detached Store for session. Changes to it are not persisted.
func (s *service) Load(ctx context.Context, session string) (*Store, error) {
	if err := ValidateSession(session); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrate(ctx, session)
}

func (s *service) mutate(ctx context.Context, session string, apply func(*Store)) (*Snapshot, error) {
	if err := ValidateSession(session); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.hydrate(ctx, session)
	if err != nil {
		return nil, err
	}
	apply(store)
	if err := s.mirror.Save(ctx, session, store.Lines()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return snapshotOf(session, store), nil
}

func (s *service) hydrate(ctx context.Context, session string) (*Store, error) {
	lines, ok, err := s.mirror.Load(ctx, session)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if !ok {
		s.logg.Debug(s.logg.WithCartSession(ctx, session), "cart session started")
		return New(), nil
	}
	return Restore(lines), nil
}

func snapshotOf(session string, store *Store) *Snapshot {
	return &Snapshot{
		Session:    session,
		Lines:      store.Lines(),
		TotalItems: store.TotalItems(),
		TotalPrice: store.TotalPrice(),
	}
}
