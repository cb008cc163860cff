package services

import (
	"context"
	"testing"

	"vidtube_server/models"
)

func seedRelations(t *testing.T, store *MemoryRelationStore, kind models.RelationKind, pairs map[string][]string) {
	t.Helper()
	ctx := context.Background()
	for target, actors := range pairs {
		for _, actor := range actors {
			if _, err := store.Insert(ctx, actor, target, kind); err != nil {
				t.Fatalf("seeding %s -> %s failed: %v", actor, target, err)
			}
		}
	}
}

func TestProjectOne(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRelationStore()
	seedRelations(t, store, models.KindLikesVideo, map[string][]string{
		"v1": {"u1", "u2", "u3"},
		"v2": {"u2"},
	})
	svc := NewProjectionService(store)

	tests := []struct {
		name       string
		targetID   string
		viewerID   string
		wantCount  int
		wantActive bool
	}{
		{"viewer with relation", "v1", "u1", 3, true},
		{"viewer without relation", "v1", "u9", 3, false},
		{"anonymous viewer", "v1", "", 3, false},
		{"unrelated target", "v2", "u1", 1, false},
		{"unknown target", "v9", "u1", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			view, err := svc.ProjectOne(ctx, tc.targetID, models.KindLikesVideo, tc.viewerID)
			if err != nil {
				t.Fatalf("ProjectOne failed: %v", err)
			}
			if view.Count != tc.wantCount {
				t.Errorf("count = %d, want %d", view.Count, tc.wantCount)
			}
			if view.ViewerRelationActive != tc.wantActive {
				t.Errorf("viewerRelationActive = %v, want %v", view.ViewerRelationActive, tc.wantActive)
			}
		})
	}
}

func TestProjectOneTracksToggles(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRelationStore()
	toggles := newTestToggleService(store)
	projections := NewProjectionService(store)

	if _, err := toggles.Toggle(ctx, "u1", "v1", models.KindLikesVideo); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	view, err := projections.ProjectOne(ctx, "v1", models.KindLikesVideo, "u1")
	if err != nil {
		t.Fatalf("ProjectOne failed: %v", err)
	}
	if view.Count != 1 || !view.ViewerRelationActive {
		t.Fatalf("after toggle on: count=%d active=%v, want 1/true", view.Count, view.ViewerRelationActive)
	}

	if _, err := toggles.Toggle(ctx, "u1", "v1", models.KindLikesVideo); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	view, err = projections.ProjectOne(ctx, "v1", models.KindLikesVideo, "u1")
	if err != nil {
		t.Fatalf("ProjectOne failed: %v", err)
	}
	if view.Count != 0 || view.ViewerRelationActive {
		t.Fatalf("after toggle off: count=%d active=%v, want 0/false", view.Count, view.ViewerRelationActive)
	}
}

func TestProjectMany(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRelationStore()
	seedRelations(t, store, models.KindLikesVideo, map[string][]string{
		"v1": {"u1", "u2"},
		"v2": {"u2"},
	})
	svc := NewProjectionService(store)

	views, err := svc.ProjectMany(ctx, []string{"v1", "v2", "v3"}, models.KindLikesVideo, "u1")
	if err != nil {
		t.Fatalf("ProjectMany failed: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("got %d views, want 3", len(views))
	}

	want := map[string]models.AggregateView{
		"v1": {Count: 2, ViewerRelationActive: true},
		"v2": {Count: 1, ViewerRelationActive: false},
		"v3": {Count: 0, ViewerRelationActive: false},
	}
	for id, w := range want {
		if views[id] != w {
			t.Errorf("views[%s] = %+v, want %+v", id, views[id], w)
		}
	}
}

func TestProjectManyAnonymous(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRelationStore()
	seedRelations(t, store, models.KindLikesVideo, map[string][]string{
		"v1": {"u1"},
	})
	svc := NewProjectionService(store)

	views, err := svc.ProjectMany(ctx, []string{"v1"}, models.KindLikesVideo, "")
	if err != nil {
		t.Fatalf("ProjectMany failed: %v", err)
	}
	if views["v1"].Count != 1 {
		t.Errorf("count = %d, want 1", views["v1"].Count)
	}
	if views["v1"].ViewerRelationActive {
		t.Error("anonymous viewer got an active relation flag")
	}
}

func TestProjectManyEmptyPage(t *testing.T) {
	ctx := context.Background()
	svc := NewProjectionService(countingStoreOnEmpty(t))

	views, err := svc.ProjectMany(ctx, nil, models.KindLikesVideo, "u1")
	if err != nil {
		t.Fatalf("ProjectMany failed: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("got %d views for empty input, want 0", len(views))
	}
}

// countingStoreOnEmpty fails the test if any query reaches the store, which is
// the contract for a zero-length target page.
func countingStoreOnEmpty(t *testing.T) RelationStore {
	t.Helper()
	return &failingStore{t: t}
}

type failingStore struct {
	RelationStore
	t *testing.T
}

func (s *failingStore) CountsByTargets(ctx context.Context, targetIDs []string, kind models.RelationKind) (map[string]int, error) {
	s.t.Fatal("CountsByTargets called for an empty page")
	return nil, nil
}

func (s *failingStore) ExistsForActor(ctx context.Context, actorID string, targetIDs []string, kind models.RelationKind) (map[string]struct{}, error) {
	s.t.Fatal("ExistsForActor called for an empty page")
	return nil, nil
}

func TestProjectBatchMatchesSingle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRelationStore()
	seedRelations(t, store, models.KindSubscribesTo, map[string][]string{
		"ch1": {"u1", "u2", "u3"},
		"ch2": {"u1"},
		"ch3": {"u4"},
	})
	svc := NewProjectionService(store)

	targets := []string{"ch1", "ch2", "ch3"}
	batch, err := svc.ProjectMany(ctx, targets, models.KindSubscribesTo, "u1")
	if err != nil {
		t.Fatalf("ProjectMany failed: %v", err)
	}
	for _, id := range targets {
		single, err := svc.ProjectOne(ctx, id, models.KindSubscribesTo, "u1")
		if err != nil {
			t.Fatalf("ProjectOne(%s) failed: %v", id, err)
		}
		if batch[id] != *single {
			t.Errorf("batch[%s] = %+v, single = %+v", id, batch[id], *single)
		}
	}
}
