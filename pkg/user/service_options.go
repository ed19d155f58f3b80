package user

import (
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ServiceOption configures a Service instance.
type ServiceOption func(*service)

// WithBcryptCost sets the bcrypt work factor. Values outside bcrypt's
// accepted range are ignored.
func WithBcryptCost(cost int) ServiceOption {
	return func(s *service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.cost = cost
		}
	}
}

// WithClock overrides the time source used for benefit start dates.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used for account events.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *service) {
		if log != nil {
			s.log = log
		}
	}
}
