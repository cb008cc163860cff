package services

import (
	"context"

	"vidtube_server/models"
)

// ProjectionService computes the read-side aggregates: how many actors have a
// relation to a target, and whether the requesting viewer is one of them.
// It never writes; views are recomputed on every call.
type ProjectionService struct {
	Relations RelationStore
}

func NewProjectionService(relations RelationStore) *ProjectionService {
	return &ProjectionService{Relations: relations}
}

// ProjectOne builds the aggregate view for a single target. An empty viewerID
// means an anonymous request: the flag is false, never an error.
func (s *ProjectionService) ProjectOne(ctx context.Context, targetID string, kind models.RelationKind, viewerID string) (*models.AggregateView, error) {
	count, err := s.Relations.CountByTarget(ctx, targetID, kind)
	if err != nil {
		return nil, err
	}

	view := &models.AggregateView{Count: count}
	if viewerID == "" {
		return view, nil
	}

	fact, err := s.Relations.Find(ctx, viewerID, targetID, kind)
	if err != nil {
		return nil, err
	}
	view.ViewerRelationActive = fact != nil
	return view, nil
}

// ProjectMany builds views for a pre-paginated page of targets with one
// counts query and at most one membership query, regardless of page size.
func (s *ProjectionService) ProjectMany(ctx context.Context, targetIDs []string, kind models.RelationKind, viewerID string) (map[string]models.AggregateView, error) {
	views := make(map[string]models.AggregateView, len(targetIDs))
	if len(targetIDs) == 0 {
		return views, nil
	}

	counts, err := s.Relations.CountsByTargets(ctx, targetIDs, kind)
	if err != nil {
		return nil, err
	}

	var active map[string]struct{}
	if viewerID != "" {
		active, err = s.Relations.ExistsForActor(ctx, viewerID, targetIDs, kind)
		if err != nil {
			return nil, err
		}
	}

	for _, id := range targetIDs {
		_, isActive := active[id]
		views[id] = models.AggregateView{
			Count:                counts[id],
			ViewerRelationActive: isActive,
		}
	}
	return views, nil
}
