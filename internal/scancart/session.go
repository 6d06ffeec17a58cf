package scancart

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/scancart-backend/pkg/cartapi"
	pkgerrors "github.com/angelmondragon/scancart-backend/pkg/errors"
	"github.com/angelmondragon/scancart-backend/pkg/logger"
	"github.com/angelmondragon/scancart-backend/pkg/metrics"
)

const (
	opDelete    = "delete"
	opDeleteAll = "delete_all"
	opIncrease  = "increase"
	opDecrease  = "decrease"
	opScan      = "scan"

	msgProductNotFound = "Product not found."
	msgLookupFailed    = "Could not look up product. Try again."
)

// CartAPI is the server surface the session reconciles with.
type CartAPI interface {
	GetCart(ctx context.Context, userID string) ([]cartapi.CartLine, error)
	GetProduct(ctx context.Context, productID string) (*cartapi.Product, error)
	UpdateCartItem(ctx context.Context, userID, productID string, quantity int) error
	DeleteCartItem(ctx context.Context, userID, productID string) error
}

// Options configures a Session.
type Options struct {
	UserID string
	// DeleteConcurrency caps in-flight requests during DeleteAll; 0 means unlimited.
	DeleteConcurrency int
	Logger            *logger.Logger
	Metrics           *metrics.CartSyncMetrics
	Listener          Listener
}

// Session is the cart of one logged-in shopper. Every mutation is applied
// locally first and pushed to the server afterwards; a failed push restores
// the snapshot taken before the mutation.
type Session struct {
	api               CartAPI
	list              *List
	userID            string
	deleteConcurrency int
	logg              *logger.Logger
	metrics           *metrics.CartSyncMetrics

	// mu serializes mutations so each snapshot is the state the mutation saw.
	mu sync.Mutex

	scanMu  sync.RWMutex
	scanErr string
}

// NewSession builds a session bound to a logged-in user.
func NewSession(api CartAPI, opts Options) (*Session, error) {
	if api == nil {
		return nil, fmt.Errorf("cart api required")
	}
	userID := strings.TrimSpace(opts.UserID)
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required")
	}
	logg := opts.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Session{
		api:               api,
		list:              NewList(opts.Listener),
		userID:            userID,
		deleteConcurrency: opts.DeleteConcurrency,
		logg:              logg,
		metrics:           opts.Metrics,
	}, nil
}

func (s *Session) UserID() string { return s.userID }

// Items returns a copy of the visible cart.
func (s *Session) Items() []Item {
	return s.list.Items()
}

// Totals sums the visible cart.
func (s *Session) Totals() Totals {
	return ComputeTotals(s.list.Items())
}

// ScanError returns the pending user-facing lookup failure, if any.
func (s *Session) ScanError() string {
	s.scanMu.RLock()
	defer s.scanMu.RUnlock()
	return s.scanErr
}

// DismissScanError clears the pending lookup failure.
func (s *Session) DismissScanError() {
	s.setScanError("")
}

func (s *Session) setScanError(msg string) {
	s.scanMu.Lock()
	s.scanErr = msg
	s.scanMu.Unlock()
}

// Refresh replaces the local cart with the server's copy. An empty server
// cart (404) yields an empty list; any other failure leaves the list as is.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.api.GetCart(ctx, s.userID)
	if err != nil && !cartapi.IsNotFound(err) {
		s.logg.Error(s.ctx(ctx), "cart.refresh_failed", err)
		return err
	}

	items := make([]Item, 0, len(lines))
	for _, line := range lines {
		items = append(items, Item{Product: line.Product(), Quantity: line.Quantity})
	}
	s.list.Replace(items)
	return nil
}

// Scan resolves code to a product and adds one unit of it.
func (s *Session) Scan(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "scanned code is empty")
	}

	product, err := s.api.GetProduct(ctx, code)
	if err != nil {
		s.metrics.IncScanFailure()
		msg := msgLookupFailed
		if cartapi.IsNotFound(err) {
			msg = msgProductNotFound
		}
		s.setScanError(msg)
		s.logg.Warn(s.logg.WithProductID(s.ctx(ctx), code), "cart.scan_lookup_failed")
		return err
	}
	s.DismissScanError()

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.list.Items()
	next := s.list.Items()
	var quantity int
	if idx := indexOf(next, product.ProductID); idx >= 0 {
		next[idx].Quantity++
		quantity = next[idx].Quantity
	} else {
		next = append(next, Item{Product: *product, Quantity: 1})
		quantity = 1
	}
	s.list.Replace(next)

	return s.push(ctx, opScan, snapshot, func() error {
		return s.api.UpdateCartItem(ctx, s.userID, product.ProductID, quantity)
	})
}

// Increase adds one unit of productID.
func (s *Session) Increase(ctx context.Context, productID string) error {
	return s.adjust(ctx, opIncrease, productID, 1)
}

// Decrease removes one unit of productID. At quantity 1 it does nothing.
func (s *Session) Decrease(ctx context.Context, productID string) error {
	return s.adjust(ctx, opDecrease, productID, -1)
}

func (s *Session) adjust(ctx context.Context, op, productID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.list.Items()
	next := s.list.Items()
	idx := indexOf(next, productID)
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s is not in the cart", productID))
	}
	quantity := next[idx].Quantity + delta
	if quantity < 1 {
		return nil
	}
	next[idx].Quantity = quantity
	s.list.Replace(next)

	return s.push(ctx, op, snapshot, func() error {
		return s.api.UpdateCartItem(ctx, s.userID, productID, quantity)
	})
}

// DeleteAt removes the line at index and deletes it on the server.
func (s *Session) DeleteAt(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.list.Items()
	if index < 0 || index >= len(snapshot) {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("index %d out of range", index))
	}
	target := snapshot[index].Product.ProductID

	next := make([]Item, 0, len(snapshot)-1)
	next = append(next, snapshot[:index]...)
	next = append(next, snapshot[index+1:]...)
	s.list.Replace(next)

	return s.push(ctx, opDelete, snapshot, func() error {
		return s.api.DeleteCartItem(ctx, s.userID, target)
	})
}

// DeleteAll clears the cart and deletes every line on the server
// concurrently. If any delete fails the whole list is restored.
func (s *Session) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.list.Items()
	if len(snapshot) == 0 {
		return nil
	}
	s.list.Replace(nil)

	return s.push(ctx, opDeleteAll, snapshot, func() error {
		var (
			g      errgroup.Group
			errMu  sync.Mutex
			result error
		)
		if s.deleteConcurrency > 0 {
			g.SetLimit(s.deleteConcurrency)
		}
		for _, item := range snapshot {
			productID := item.Product.ProductID
			g.Go(func() error {
				if err := s.api.DeleteCartItem(ctx, s.userID, productID); err != nil {
					errMu.Lock()
					result = multierr.Append(result, fmt.Errorf("delete %s: %w", productID, err))
					errMu.Unlock()
				}
				return nil
			})
		}
		_ = g.Wait()
		return result
	})
}

// push runs call and restores snapshot when it fails. Caller holds s.mu.
func (s *Session) push(ctx context.Context, op string, snapshot []Item, call func() error) error {
	err := call()
	s.metrics.IncSync(op, err)
	if err == nil {
		return nil
	}

	s.list.Replace(snapshot)
	s.metrics.IncRollback(op)
	s.logg.Error(s.logg.WithField(s.ctx(ctx), "op", op), "cart.rollback", err)
	return err
}

func (s *Session) ctx(ctx context.Context) context.Context {
	return s.logg.WithUserID(ctx, s.userID)
}
