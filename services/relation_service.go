package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"vidtube_server/models"
	"vidtube_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// RelationStore is the sole owner of relation facts. Facts are unique per
// (actor, target, kind) triple; presence means the relation holds.
type RelationStore interface {
	// Find returns the fact if present, nil if absent. Absence is not an error.
	Find(ctx context.Context, actorID, targetID string, kind models.RelationKind) (*models.RelationFact, error)
	// Insert creates the fact, failing with utils.ErrAlreadyExists if the
	// triple is already present (a lost race, not a bug).
	Insert(ctx context.Context, actorID, targetID string, kind models.RelationKind) (*models.RelationFact, error)
	// Delete removes the fact if present and reports whether anything was removed.
	Delete(ctx context.Context, actorID, targetID string, kind models.RelationKind) (bool, error)
	CountByTarget(ctx context.Context, targetID string, kind models.RelationKind) (int, error)
	// CountsByTargets is the batch form for list views: one storage round
	// trip regardless of page size. Targets with no relations map to 0.
	CountsByTargets(ctx context.Context, targetIDs []string, kind models.RelationKind) (map[string]int, error)
	// ExistsForActor reports which of the given targets the actor has an
	// active relation to, in one storage round trip.
	ExistsForActor(ctx context.Context, actorID string, targetIDs []string, kind models.RelationKind) (map[string]struct{}, error)
	ListByActor(ctx context.Context, actorID string, kind models.RelationKind, limit int32) ([]models.RelationFact, error)
	ListByTarget(ctx context.Context, targetID string, kind models.RelationKind, limit int32) ([]models.RelationFact, error)
}

// DynamoRelationStore stores facts in the RelationFacts table (partition key
// targetKey = kind#targetId, sort key actorId) and keeps a per-target counter
// item in RelationCounts, adjusted only when a write actually changed state.
type DynamoRelationStore struct {
	Dynamo *DynamoService
}

func NewDynamoRelationStore(dynamo *DynamoService) *DynamoRelationStore {
	return &DynamoRelationStore{Dynamo: dynamo}
}

func factKey(actorID, targetID string, kind models.RelationKind) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"targetKey": StringAttr(models.TargetKey(kind, targetID)),
		"actorId":   StringAttr(actorID),
	}
}

func countKey(targetID string, kind models.RelationKind) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"targetKey": StringAttr(models.TargetKey(kind, targetID)),
	}
}

func (s *DynamoRelationStore) Find(ctx context.Context, actorID, targetID string, kind models.RelationKind) (*models.RelationFact, error) {
	item, err := s.Dynamo.GetItem(ctx, models.RelationFactsTable, factKey(actorID, targetID, kind))
	if err != nil {
		return nil, utils.MapStorageError(err)
	}
	if item == nil {
		return nil, nil
	}

	var fact models.RelationFact
	if err := attributevalue.UnmarshalMap(item, &fact); err != nil {
		return nil, err
	}
	return &fact, nil
}

func (s *DynamoRelationStore) Insert(ctx context.Context, actorID, targetID string, kind models.RelationKind) (*models.RelationFact, error) {
	fact := models.RelationFact{
		TargetKey: models.TargetKey(kind, targetID),
		ActorID:   actorID,
		Kind:      string(kind),
		TargetID:  targetID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	err := s.Dynamo.PutItemWithCondition(ctx, models.RelationFactsTable, fact, "attribute_not_exists(actorId)")
	if err != nil {
		if errors.Is(err, ErrConditionFailed) {
			return nil, utils.ErrAlreadyExists
		}
		return nil, utils.MapStorageError(err)
	}

	if err := s.adjustCount(ctx, targetID, kind, 1); err != nil {
		return nil, err
	}
	return &fact, nil
}

func (s *DynamoRelationStore) Delete(ctx context.Context, actorID, targetID string, kind models.RelationKind) (bool, error) {
	removed, err := s.Dynamo.DeleteItemReturnOld(ctx, models.RelationFactsTable, factKey(actorID, targetID, kind))
	if err != nil {
		return false, utils.MapStorageError(err)
	}
	if !removed {
		return false, nil
	}

	if err := s.adjustCount(ctx, targetID, kind, -1); err != nil {
		return true, err
	}
	return true, nil
}

// adjustCount moves the counter item. Only called after a state-changing
// insert or delete, so the counter tracks the number of live facts.
func (s *DynamoRelationStore) adjustCount(ctx context.Context, targetID string, kind models.RelationKind, delta int) error {
	_, err := s.Dynamo.UpdateItem(ctx, models.RelationCountsTable,
		"ADD relationCount :delta",
		countKey(targetID, kind),
		map[string]types.AttributeValue{
			":delta": &types.AttributeValueMemberN{Value: strconv.Itoa(delta)},
		},
		nil,
	)
	return utils.MapStorageError(err)
}

func (s *DynamoRelationStore) CountByTarget(ctx context.Context, targetID string, kind models.RelationKind) (int, error) {
	item, err := s.Dynamo.GetItem(ctx, models.RelationCountsTable, countKey(targetID, kind))
	if err != nil {
		return 0, utils.MapStorageError(err)
	}
	if item == nil {
		return 0, nil
	}

	var counter models.RelationCount
	if err := attributevalue.UnmarshalMap(item, &counter); err != nil {
		return 0, err
	}
	if counter.RelationCount < 0 {
		return 0, nil
	}
	return counter.RelationCount, nil
}

func (s *DynamoRelationStore) CountsByTargets(ctx context.Context, targetIDs []string, kind models.RelationKind) (map[string]int, error) {
	counts := make(map[string]int, len(targetIDs))
	if len(targetIDs) == 0 {
		return counts, nil
	}

	keys := make([]map[string]types.AttributeValue, 0, len(targetIDs))
	for _, id := range targetIDs {
		counts[id] = 0
		keys = append(keys, countKey(id, kind))
	}

	items, err := s.Dynamo.BatchGetItems(ctx, models.RelationCountsTable, keys)
	if err != nil {
		return nil, utils.MapStorageError(err)
	}

	prefix := string(kind) + "#"
	for _, item := range items {
		var counter models.RelationCount
		if err := attributevalue.UnmarshalMap(item, &counter); err != nil {
			return nil, err
		}
		targetID := strings.TrimPrefix(counter.TargetKey, prefix)
		if counter.RelationCount > 0 {
			counts[targetID] = counter.RelationCount
		}
	}
	return counts, nil
}

func (s *DynamoRelationStore) ExistsForActor(ctx context.Context, actorID string, targetIDs []string, kind models.RelationKind) (map[string]struct{}, error) {
	active := make(map[string]struct{}, len(targetIDs))
	if len(targetIDs) == 0 {
		return active, nil
	}

	keys := make([]map[string]types.AttributeValue, 0, len(targetIDs))
	for _, id := range targetIDs {
		keys = append(keys, factKey(actorID, id, kind))
	}

	items, err := s.Dynamo.BatchGetItems(ctx, models.RelationFactsTable, keys)
	if err != nil {
		return nil, utils.MapStorageError(err)
	}

	for _, item := range items {
		var fact models.RelationFact
		if err := attributevalue.UnmarshalMap(item, &fact); err != nil {
			return nil, err
		}
		active[fact.TargetID] = struct{}{}
	}
	return active, nil
}

func (s *DynamoRelationStore) ListByActor(ctx context.Context, actorID string, kind models.RelationKind, limit int32) ([]models.RelationFact, error) {
	keyCondition := "actorId = :actor AND begins_with(targetKey, :prefix)"
	expressionValues := map[string]types.AttributeValue{
		":actor":  StringAttr(actorID),
		":prefix": StringAttr(string(kind) + "#"),
	}

	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.RelationFactsTable, models.ActorIDIndex, keyCondition, expressionValues, nil, limit)
	if err != nil {
		return nil, utils.MapStorageError(err)
	}

	var facts []models.RelationFact
	if err := attributevalue.UnmarshalListOfMaps(items, &facts); err != nil {
		return nil, err
	}
	return facts, nil
}

func (s *DynamoRelationStore) ListByTarget(ctx context.Context, targetID string, kind models.RelationKind, limit int32) ([]models.RelationFact, error) {
	keyCondition := "targetKey = :target"
	expressionValues := map[string]types.AttributeValue{
		":target": StringAttr(models.TargetKey(kind, targetID)),
	}

	items, err := s.Dynamo.QueryItems(ctx, models.RelationFactsTable, keyCondition, expressionValues, nil, limit)
	if err != nil {
		return nil, utils.MapStorageError(err)
	}

	var facts []models.RelationFact
	if err := attributevalue.UnmarshalListOfMaps(items, &facts); err != nil {
		return nil, err
	}
	return facts, nil
}
