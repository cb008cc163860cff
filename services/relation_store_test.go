package services

import (
	"context"
	"errors"
	"testing"

	"vidtube_server/models"
	"vidtube_server/utils"
)

func TestMemoryRelationStoreUniqueness(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRelationStore()

	if _, err := store.Insert(ctx, "u1", "v1", models.KindLikesVideo); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if _, err := store.Insert(ctx, "u1", "v1", models.KindLikesVideo); !errors.Is(err, utils.ErrAlreadyExists) {
		t.Fatalf("duplicate insert: got %v, want ErrAlreadyExists", err)
	}
	if store.Len() != 1 {
		t.Fatalf("store has %d facts, want 1", store.Len())
	}

	// Same actor and target under a different kind is a distinct triple.
	if _, err := store.Insert(ctx, "u1", "v1", models.KindLikesComment); err != nil {
		t.Fatalf("insert with different kind failed: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("store has %d facts, want 2", store.Len())
	}
}

func TestMemoryRelationStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRelationStore()

	removed, err := store.Delete(ctx, "u1", "v1", models.KindLikesVideo)
	if err != nil {
		t.Fatalf("delete of absent fact errored: %v", err)
	}
	if removed {
		t.Fatal("delete of absent fact reported removal")
	}

	if _, err := store.Insert(ctx, "u1", "v1", models.KindLikesVideo); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	removed, err = store.Delete(ctx, "u1", "v1", models.KindLikesVideo)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !removed {
		t.Fatal("delete of present fact reported nothing removed")
	}
	if store.Len() != 0 {
		t.Fatalf("store has %d facts after delete, want 0", store.Len())
	}
}

func TestMemoryRelationStoreCounts(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRelationStore()

	for _, actor := range []string{"u1", "u2", "u3"} {
		if _, err := store.Insert(ctx, actor, "v1", models.KindLikesVideo); err != nil {
			t.Fatalf("insert %s failed: %v", actor, err)
		}
	}
	if _, err := store.Insert(ctx, "u1", "v2", models.KindLikesVideo); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	// A toggled-off relation must never count.
	if _, err := store.Delete(ctx, "u3", "v1", models.KindLikesVideo); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	count, err := store.CountByTarget(ctx, "v1", models.KindLikesVideo)
	if err != nil {
		t.Fatalf("CountByTarget failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("CountByTarget = %d, want 2", count)
	}

	counts, err := store.CountsByTargets(ctx, []string{"v1", "v2", "v3"}, models.KindLikesVideo)
	if err != nil {
		t.Fatalf("CountsByTargets failed: %v", err)
	}
	want := map[string]int{"v1": 2, "v2": 1, "v3": 0}
	for id, n := range want {
		if counts[id] != n {
			t.Errorf("counts[%s] = %d, want %d", id, counts[id], n)
		}
	}
}

func TestMemoryRelationStoreExistsForActor(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRelationStore()

	if _, err := store.Insert(ctx, "u1", "v1", models.KindLikesVideo); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if _, err := store.Insert(ctx, "u1", "v3", models.KindLikesVideo); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	active, err := store.ExistsForActor(ctx, "u1", []string{"v1", "v2", "v3"}, models.KindLikesVideo)
	if err != nil {
		t.Fatalf("ExistsForActor failed: %v", err)
	}
	if _, ok := active["v1"]; !ok {
		t.Error("v1 missing from active set")
	}
	if _, ok := active["v2"]; ok {
		t.Error("v2 unexpectedly in active set")
	}
	if _, ok := active["v3"]; !ok {
		t.Error("v3 missing from active set")
	}
}

func TestMemoryRelationStoreCancelledContext(t *testing.T) {
	store := NewMemoryRelationStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Insert(ctx, "u1", "v1", models.KindLikesVideo); !errors.Is(err, utils.ErrTimeout) {
		t.Fatalf("insert on cancelled context: got %v, want ErrTimeout", err)
	}
	if _, err := store.Find(ctx, "u1", "v1", models.KindLikesVideo); !errors.Is(err, utils.ErrTimeout) {
		t.Fatalf("find on cancelled context: got %v, want ErrTimeout", err)
	}
}
