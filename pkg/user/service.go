package user

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/benefitskit/pkg/logger"
	"github.com/dmitrymomot/benefitskit/pkg/sequence"
)

// Service defines the credential store operations.
type Service interface {
	CreateUser(ctx context.Context, in NewUser) (*User, error)
	ValidateLogin(ctx context.Context, userName, password string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUserName(ctx context.Context, userName string) (*User, error)
	IsAdmin(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]User, error)
	UpdateBenefitStartDate(ctx context.Context, id int64, date string) (*User, error)
	SetAdmin(ctx context.Context, id int64, admin bool) error
}

type service struct {
	store     Store
	seq       sequence.Generator
	cost      int
	now       func() time.Time
	log       *slog.Logger
	dummyHash []byte
}

// NewService creates a Service. Panics if store or seq is nil.
func NewService(store Store, seq sequence.Generator, opts ...ServiceOption) Service {
	if store == nil {
		panic("user: Store is required")
	}
	if seq == nil {
		panic("user: sequence.Generator is required")
	}

	s := &service{
		store: store,
		seq:   seq,
		cost:  bcrypt.DefaultCost,
		now:   time.Now,
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	// Compared against on unknown user names so both failure paths pay one
	// bcrypt verification.
	dummy, err := bcrypt.GenerateFromPassword([]byte("benefitskit-dummy-password"), s.cost)
	if err != nil {
		panic("user: failed to prepare dummy password hash: " + err.Error())
	}
	s.dummyHash = dummy

	return s
}

// CreateUser registers a new account. The userName must not already exist
// (exact, case-sensitive match). The id is drawn from the "userId" counter
// only after the password has been hashed.
func (s *service) CreateUser(ctx context.Context, in NewUser) (*User, error) {
	if _, err := s.store.FindByUserName(ctx, in.UserName); err == nil {
		return nil, ErrDuplicateUser
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, errors.Join(ErrFailedToHash, err)
	}

	id, err := s.seq.Next(ctx, SequenceName)
	if err != nil {
		return nil, err
	}

	u := User{
		ID:               id,
		UserName:         in.UserName,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		PasswordHash:     string(hash),
		Email:            in.Email,
		BenefitStartDate: randomFutureDate(s.now()),
	}
	if err := s.store.Insert(ctx, u); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user created",
		logger.Component("user"),
		logger.Event("user.created"),
		logger.UserID(u.ID),
		logger.UserName(u.UserName),
	)
	return &u, nil
}

// ValidateLogin checks a userName/password pair and returns the full record
// on success, including the admin flag.
func (s *service) ValidateLogin(ctx context.Context, userName, password string) (*User, error) {
	u, err := s.store.FindByUserName(ctx, userName)
	if errors.Is(err, ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, ErrNoSuchUser
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}
	return u, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.store.FindByID(ctx, id)
}

func (s *service) GetByUserName(ctx context.Context, userName string) (*User, error) {
	return s.store.FindByUserName(ctx, userName)
}

// IsAdmin reports the admin flag of a user. A missing user is not an admin;
// store failures are returned so callers can deny.
func (s *service) IsAdmin(ctx context.Context, id int64) (bool, error) {
	u, err := s.store.FindByID(ctx, id)
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return u.IsAdmin, nil
}

func (s *service) List(ctx context.Context) ([]User, error) {
	return s.store.List(ctx)
}

// UpdateBenefitStartDate sets a user's benefit start date from a
// YYYY-MM-DD string.
func (s *service) UpdateBenefitStartDate(ctx context.Context, id int64, date string) (*User, error) {
	d, err := time.Parse(BenefitDateLayout, date)
	if err != nil {
		return nil, ErrInvalidBenefitDate
	}
	return s.store.SetBenefitStartDate(ctx, id, d)
}

func (s *service) SetAdmin(ctx context.Context, id int64, admin bool) error {
	if err := s.store.SetAdmin(ctx, id, admin); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "user admin flag changed",
		logger.Component("user"),
		logger.Event("user.admin_changed"),
		logger.UserID(id),
		slog.Bool("is_admin", admin),
	)
	return nil
}

// randomFutureDate returns a UTC date between one and thirty years after now.
func randomFutureDate(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	base := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return base.AddDate(1+rand.IntN(30), rand.IntN(12), rand.IntN(28))
}
