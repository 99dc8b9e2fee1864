// Package service contains the business logic for TravelBook.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/internal/repo"
)

// UnitOfWork hands out repositories. Repos is bound to the pool and serves
// single-statement reads; InTx binds every repository to one transaction that
// commits only when fn returns nil. *store.Store satisfies it.
type UnitOfWork interface {
	Repos() repo.Repos
	InTx(ctx context.Context, fn func(r repo.Repos) error) error
}

// wrap prefixes err with op. Failures that are not business-rule violations
// are additionally marked with domain.ErrStoreUnavailable so callers can tell
// an unusable store from a rejected request.
func wrap(op string, err error) error {
	if domain.IsBusiness(err) || errors.Is(err, domain.ErrStoreUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}

// translateNotFound replaces a generic repo not-found with the specific
// sentinel of the entity the caller asked for.
func translateNotFound(err, specific error) error {
	if errors.Is(err, domain.ErrNotFound) && !errors.Is(err, specific) {
		return specific
	}
	return err
}
