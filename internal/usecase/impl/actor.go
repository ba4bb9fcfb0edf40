// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"

	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/policy"
	"coderr/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// resolveActor loads the caller from the store. Capabilities are decided by the
// stored profile, never by token claims. A missing caller resolves to the
// anonymous actor, which every guarded action rejects.
func resolveActor(ctx context.Context, users repository.UserRepository, callerID uuid.UUID) (policy.Actor, error) {
	if callerID == uuid.Nil {
		return policy.Anonymous(), nil
	}

	user, err := users.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return policy.Anonymous(), nil
		}

		return policy.Actor{}, errors.Wrap(err, "failed to resolve caller")
	}

	return policy.FromUser(user), nil
}

// authorize resolves the caller and checks action against subject in one step.
func authorize(
	ctx context.Context,
	users repository.UserRepository,
	callerID uuid.UUID,
	action policy.Action,
	subject policy.Subject,
) (policy.Actor, error) {
	actor, err := resolveActor(ctx, users, callerID)
	if err != nil {
		return actor, err
	}

	return actor, policy.Authorize(action, actor, subject)
}

// requireAuthenticated resolves the caller and rejects the anonymous actor.
func requireAuthenticated(ctx context.Context, users repository.UserRepository, callerID uuid.UUID) (policy.Actor, error) {
	actor, err := resolveActor(ctx, users, callerID)
	if err != nil {
		return actor, err
	}
	if !actor.Authenticated() {
		return actor, domainerrors.ErrUnauthenticated
	}

	return actor, nil
}
