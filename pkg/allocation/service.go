package allocation

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/dmitrymomot/benefitskit/pkg/logger"
	"github.com/dmitrymomot/benefitskit/pkg/user"
)

// Threshold bounds accepted by GetByUserAndThreshold.
const (
	MinThreshold = 0
	MaxThreshold = 99
)

// Service defines the allocation ledger operations.
type Service interface {
	Update(ctx context.Context, userID int64, stocks, funds, bonds string) (*View, error)
	GetByUserAndThreshold(ctx context.Context, userID int64, threshold string) ([]View, error)
	Seed(ctx context.Context, userID int64) (*View, error)
}

// ServiceOption configures a Service instance.
type ServiceOption func(*service)

// WithLogger sets the logger used for ledger events.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *service) {
		if log != nil {
			s.log = log
		}
	}
}

type service struct {
	store Store
	users UserReader
	log   *slog.Logger
}

// NewService creates a Service. Panics if store or users is nil.
func NewService(store Store, users UserReader, opts ...ServiceOption) Service {
	if store == nil {
		panic("allocation: Store is required")
	}
	if users == nil {
		panic("allocation: UserReader is required")
	}

	s := &service{
		store: store,
		users: users,
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Update validates the three percentages and replaces the user's allocation.
// Nothing is written when validation fails or the owner does not exist.
func (s *service) Update(ctx context.Context, userID int64, stocks, funds, bonds string) (*View, error) {
	a, err := parseAllocation(userID, stocks, funds, bonds)
	if err != nil {
		return nil, err
	}
	return s.write(ctx, a)
}

// Seed stores a random valid split: stocks and funds in [1,40], bonds the rest.
func (s *service) Seed(ctx context.Context, userID int64) (*View, error) {
	st := rand.IntN(40) + 1
	fu := rand.IntN(40) + 1
	return s.write(ctx, Allocation{
		UserID: userID,
		Stocks: st,
		Funds:  fu,
		Bonds:  Total - st - fu,
	})
}

func (s *service) write(ctx context.Context, a Allocation) (*View, error) {
	owner, err := s.users.GetByID(ctx, a.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.store.Upsert(ctx, a); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "allocation updated",
		logger.Component("allocation"),
		logger.Event("allocation.updated"),
		logger.UserID(a.UserID),
		slog.Int("stocks", a.Stocks),
		slog.Int("funds", a.Funds),
		slog.Int("bonds", a.Bonds),
	)

	v := newView(a, owner)
	return &v, nil
}

// GetByUserAndThreshold returns the user's own allocation when threshold is
// empty. With a threshold in [0,99] it returns every user's allocation whose
// stocks strictly exceed it. An empty result is ErrNoMatch.
func (s *service) GetByUserAndThreshold(ctx context.Context, userID int64, threshold string) ([]View, error) {
	threshold = strings.TrimSpace(threshold)

	if threshold == "" {
		a, err := s.store.FindByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		return s.annotate(ctx, []Allocation{*a})
	}

	t, err := strconv.Atoi(threshold)
	if err != nil || t < MinThreshold || t > MaxThreshold {
		return nil, ErrInvalidThreshold
	}

	records, err := s.store.FindStocksAbove(ctx, t)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoMatch
	}
	return s.annotate(ctx, records)
}

// annotate joins owner names. Records whose owner no longer exists keep
// empty names; store failures abort.
func (s *service) annotate(ctx context.Context, records []Allocation) ([]View, error) {
	views := make([]View, 0, len(records))
	for _, a := range records {
		owner, err := s.users.GetByID(ctx, a.UserID)
		if err != nil && !errors.Is(err, user.ErrUserNotFound) {
			return nil, err
		}
		views = append(views, newView(a, owner))
	}
	return views, nil
}

func parseAllocation(userID int64, stocks, funds, bonds string) (Allocation, error) {
	var parts [3]int
	for i, raw := range []string{stocks, funds, bonds} {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return Allocation{}, ErrInvalidAllocation
		}
		parts[i] = n
	}

	a := Allocation{UserID: userID, Stocks: parts[0], Funds: parts[1], Bonds: parts[2]}
	if !a.Valid() {
		return Allocation{}, ErrInvalidAllocation
	}
	return a, nil
}
