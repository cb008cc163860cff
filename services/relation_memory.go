package services

import (
	"context"
	"sync"
	"time"

	"vidtube_server/models"
	"vidtube_server/utils"
)

// MemoryRelationStore is an in-memory RelationStore used by the tests and for
// running the server without AWS credentials. It enforces the same uniqueness
// semantics as the DynamoDB store.
type MemoryRelationStore struct {
	mu    sync.Mutex
	facts map[string]models.RelationFact // targetKey + "|" + actorId
}

func NewMemoryRelationStore() *MemoryRelationStore {
	return &MemoryRelationStore{facts: make(map[string]models.RelationFact)}
}

func memKey(actorID, targetID string, kind models.RelationKind) string {
	return models.TargetKey(kind, targetID) + "|" + actorID
}

func (s *MemoryRelationStore) Find(ctx context.Context, actorID, targetID string, kind models.RelationKind) (*models.RelationFact, error) {
	if err := ctx.Err(); err != nil {
		return nil, utils.MapStorageError(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	fact, ok := s.facts[memKey(actorID, targetID, kind)]
	if !ok {
		return nil, nil
	}
	return &fact, nil
}

func (s *MemoryRelationStore) Insert(ctx context.Context, actorID, targetID string, kind models.RelationKind) (*models.RelationFact, error) {
	if err := ctx.Err(); err != nil {
		return nil, utils.MapStorageError(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memKey(actorID, targetID, kind)
	if _, ok := s.facts[key]; ok {
		return nil, utils.ErrAlreadyExists
	}

	fact := models.RelationFact{
		TargetKey: models.TargetKey(kind, targetID),
		ActorID:   actorID,
		Kind:      string(kind),
		TargetID:  targetID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	s.facts[key] = fact
	return &fact, nil
}

func (s *MemoryRelationStore) Delete(ctx context.Context, actorID, targetID string, kind models.RelationKind) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, utils.MapStorageError(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memKey(actorID, targetID, kind)
	if _, ok := s.facts[key]; !ok {
		return false, nil
	}
	delete(s.facts, key)
	return true, nil
}

func (s *MemoryRelationStore) CountByTarget(ctx context.Context, targetID string, kind models.RelationKind) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, utils.MapStorageError(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	targetKey := models.TargetKey(kind, targetID)
	count := 0
	for _, fact := range s.facts {
		if fact.TargetKey == targetKey {
			count++
		}
	}
	return count, nil
}

func (s *MemoryRelationStore) CountsByTargets(ctx context.Context, targetIDs []string, kind models.RelationKind) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, utils.MapStorageError(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int, len(targetIDs))
	for _, id := range targetIDs {
		counts[id] = 0
	}
	for _, fact := range s.facts {
		if fact.Kind != string(kind) {
			continue
		}
		if _, wanted := counts[fact.TargetID]; wanted {
			counts[fact.TargetID]++
		}
	}
	return counts, nil
}

func (s *MemoryRelationStore) ExistsForActor(ctx context.Context, actorID string, targetIDs []string, kind models.RelationKind) (map[string]struct{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, utils.MapStorageError(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make(map[string]struct{}, len(targetIDs))
	for _, id := range targetIDs {
		if _, ok := s.facts[memKey(actorID, id, kind)]; ok {
			active[id] = struct{}{}
		}
	}
	return active, nil
}

func (s *MemoryRelationStore) ListByActor(ctx context.Context, actorID string, kind models.RelationKind, limit int32) ([]models.RelationFact, error) {
	if err := ctx.Err(); err != nil {
		return nil, utils.MapStorageError(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var facts []models.RelationFact
	for _, fact := range s.facts {
		if fact.ActorID == actorID && fact.Kind == string(kind) {
			facts = append(facts, fact)
			if limit > 0 && int32(len(facts)) >= limit {
				break
			}
		}
	}
	return facts, nil
}

func (s *MemoryRelationStore) ListByTarget(ctx context.Context, targetID string, kind models.RelationKind, limit int32) ([]models.RelationFact, error) {
	if err := ctx.Err(); err != nil {
		return nil, utils.MapStorageError(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	targetKey := models.TargetKey(kind, targetID)
	var facts []models.RelationFact
	for _, fact := range s.facts {
		if fact.TargetKey == targetKey {
			facts = append(facts, fact)
			if limit > 0 && int32(len(facts)) >= limit {
				break
			}
		}
	}
	return facts, nil
}

// Len reports the number of stored facts. Used by tests.
func (s *MemoryRelationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.facts)
}
