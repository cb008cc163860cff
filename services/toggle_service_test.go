package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"vidtube_server/models"
	"vidtube_server/utils"
)

func allowAll(ctx context.Context, targetID string) (bool, error) {
	return true, nil
}

func newTestToggleService(store RelationStore) *ToggleService {
	svc := NewToggleService(store)
	svc.Register(models.KindLikesVideo, EntityResolverFunc(allowAll))
	svc.Register(models.KindLikesComment, EntityResolverFunc(allowAll))
	svc.Register(models.KindLikesTweet, EntityResolverFunc(allowAll))
	svc.Register(models.KindSubscribesTo, EntityResolverFunc(allowAll))
	return svc
}

func TestToggleAlternates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRelationStore()
	svc := newTestToggleService(store)

	// A sequence of N toggles ends active when N is odd, inactive when even,
	// with the fact count matching the final state.
	for i := 1; i <= 5; i++ {
		result, err := svc.Toggle(ctx, "u1", "v1", models.KindLikesVideo)
		if err != nil {
			t.Fatalf("toggle %d failed: %v", i, err)
		}
		wantActive := i%2 == 1
		if result.Active != wantActive {
			t.Fatalf("toggle %d: active = %v, want %v", i, result.Active, wantActive)
		}
		wantLen := 0
		if wantActive {
			wantLen = 1
		}
		if store.Len() != wantLen {
			t.Fatalf("toggle %d: store has %d facts, want %d", i, store.Len(), wantLen)
		}
	}
}

func TestToggleIndependentPerKindAndActor(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRelationStore()
	svc := newTestToggleService(store)

	if _, err := svc.Toggle(ctx, "u1", "v1", models.KindLikesVideo); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if _, err := svc.Toggle(ctx, "u2", "v1", models.KindLikesVideo); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if _, err := svc.Toggle(ctx, "u1", "v1", models.KindLikesComment); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if store.Len() != 3 {
		t.Fatalf("store has %d facts, want 3 distinct triples", store.Len())
	}

	// Toggling one off leaves the others untouched.
	result, err := svc.Toggle(ctx, "u1", "v1", models.KindLikesVideo)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if result.Active {
		t.Fatal("second toggle for u1 still active")
	}
	if store.Len() != 2 {
		t.Fatalf("store has %d facts, want 2", store.Len())
	}
}

func TestToggleValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestToggleService(NewMemoryRelationStore())

	tests := []struct {
		name    string
		actorID string
		target  string
		kind    models.RelationKind
		wantErr error
	}{
		{"anonymous actor", "", "v1", models.KindLikesVideo, utils.ErrUnauthorized},
		{"unknown kind", "u1", "v1", models.RelationKind("FOLLOWS"), nil},
		{"self subscription", "u1", "u1", models.KindSubscribesTo, utils.ErrSelfSubscription},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Toggle(ctx, tc.actorID, tc.target, tc.kind)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestToggleSelfSubscriptionLeavesNoFact(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRelationStore()
	svc := newTestToggleService(store)

	if _, err := svc.Toggle(ctx, "u1", "u1", models.KindSubscribesTo); !errors.Is(err, utils.ErrSelfSubscription) {
		t.Fatalf("got %v, want ErrSelfSubscription", err)
	}
	if store.Len() != 0 {
		t.Fatalf("self-subscription attempt left %d facts in the store", store.Len())
	}
}

func TestToggleSelfLikeAllowed(t *testing.T) {
	// Liking your own content is permitted; only subscriptions are reflexive-guarded.
	ctx := context.Background()
	svc := newTestToggleService(NewMemoryRelationStore())

	result, err := svc.Toggle(ctx, "u1", "u1-video", models.KindLikesVideo)
	if err != nil {
		t.Fatalf("self-like failed: %v", err)
	}
	if !result.Active {
		t.Fatal("self-like did not activate")
	}
}

func TestToggleMissingTarget(t *testing.T) {
	ctx := context.Background()
	svc := NewToggleService(NewMemoryRelationStore())
	svc.Register(models.KindLikesVideo, EntityResolverFunc(func(ctx context.Context, targetID string) (bool, error) {
		return targetID == "v1", nil
	}))

	if _, err := svc.Toggle(ctx, "u1", "ghost", models.KindLikesVideo); !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if result, err := svc.Toggle(ctx, "u1", "v1", models.KindLikesVideo); err != nil || !result.Active {
		t.Fatalf("toggle on resolvable target: result=%v err=%v", result, err)
	}
}

func TestToggleResolverError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("resolver unavailable")
	svc := NewToggleService(NewMemoryRelationStore())
	svc.Register(models.KindLikesVideo, EntityResolverFunc(func(ctx context.Context, targetID string) (bool, error) {
		return false, boom
	}))

	if _, err := svc.Toggle(ctx, "u1", "v1", models.KindLikesVideo); !errors.Is(err, boom) {
		t.Fatalf("got %v, want resolver error passed through", err)
	}
}

// raceStore forces both concurrent togglers to observe the fact absent before
// either one gets to insert, so exactly one insert wins the uniqueness check.
type raceStore struct {
	RelationStore
	barrier sync.WaitGroup
}

func (s *raceStore) Find(ctx context.Context, actorID, targetID string, kind models.RelationKind) (*models.RelationFact, error) {
	fact, err := s.RelationStore.Find(ctx, actorID, targetID, kind)
	s.barrier.Done()
	s.barrier.Wait()
	return fact, err
}

func TestToggleConcurrentActivationConverges(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryRelationStore()
	store := &raceStore{RelationStore: inner}
	store.barrier.Add(2)
	svc := newTestToggleService(store)

	results := make([]*models.ToggleResult, 2)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Toggle(ctx, "u1", "v1", models.KindLikesVideo)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 2; i++ {
		if errs[i] != nil {
			t.Fatalf("toggler %d errored: %v", i, errs[i])
		}
		if !results[i].Active {
			t.Fatalf("toggler %d: active = false, want true for both racers", i)
		}
	}
	if inner.Len() != 1 {
		t.Fatalf("store has %d facts after the race, want exactly 1", inner.Len())
	}
}
