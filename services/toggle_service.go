package services

import (
	"context"
	"errors"

	"vidtube_server/models"
	"vidtube_server/utils"
)

// EntityResolver confirms a toggle target actually exists. One resolver is
// registered per relation kind (videos, comments, tweets, users-as-channels).
type EntityResolver interface {
	Exists(ctx context.Context, targetID string) (bool, error)
}

// EntityResolverFunc adapts a function to the EntityResolver interface.
type EntityResolverFunc func(ctx context.Context, targetID string) (bool, error)

func (f EntityResolverFunc) Exists(ctx context.Context, targetID string) (bool, error) {
	return f(ctx, targetID)
}

// ToggleService flips relation facts. One endpoint serves both directions:
// the caller always toggles and trusts the returned active flag.
type ToggleService struct {
	Relations RelationStore
	Resolvers map[models.RelationKind]EntityResolver
}

func NewToggleService(relations RelationStore) *ToggleService {
	return &ToggleService{
		Relations: relations,
		Resolvers: make(map[models.RelationKind]EntityResolver),
	}
}

// Register wires the existence check for one relation kind.
func (s *ToggleService) Register(kind models.RelationKind, resolver EntityResolver) {
	s.Resolvers[kind] = resolver
}

// Toggle activates the relation if absent and deactivates it if present.
//
// This is read-then-act, not compare-and-swap. Two concurrent toggles that
// both observe the fact absent will both try to insert; the store's
// uniqueness constraint rejects the loser with ErrAlreadyExists, which is
// converted here into the same successful "active" outcome the winner got —
// the actor's desired end state holds either way. A delete that removed
// nothing lost the symmetric race and still reports "inactive".
func (s *ToggleService) Toggle(ctx context.Context, actorID, targetID string, kind models.RelationKind) (*models.ToggleResult, error) {
	if actorID == "" {
		return nil, utils.ErrUnauthorized
	}
	if !kind.Valid() {
		return nil, utils.BadRequest("unknown relation kind")
	}
	if kind == models.KindSubscribesTo && actorID == targetID {
		return nil, utils.ErrSelfSubscription
	}

	resolver, ok := s.Resolvers[kind]
	if !ok {
		return nil, utils.BadRequest("unknown relation kind")
	}
	exists, err := resolver.Exists(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, utils.ErrNotFound
	}

	fact, err := s.Relations.Find(ctx, actorID, targetID, kind)
	if err != nil {
		return nil, err
	}

	if fact != nil {
		// Losing the delete race to a concurrent toggle is fine: the
		// relation is gone, which is what this caller asked for.
		if _, err := s.Relations.Delete(ctx, actorID, targetID, kind); err != nil {
			return nil, err
		}
		return &models.ToggleResult{Active: false}, nil
	}

	if _, err := s.Relations.Insert(ctx, actorID, targetID, kind); err != nil {
		if errors.Is(err, utils.ErrAlreadyExists) {
			return &models.ToggleResult{Active: true}, nil
		}
		return nil, err
	}
	return &models.ToggleResult{Active: true}, nil
}
