package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/relief-service/internal/domain"
	"github.com/spec-kit/relief-service/internal/events"
	"github.com/spec-kit/relief-service/internal/persistence"
)

func newTestStore(t *testing.T) (*Store, *persistence.MemoryKV) {
	t.Helper()
	kv := persistence.NewMemoryKV()
	s := New(kv, events.NewInMemoryDispatcher(), zap.NewNop())
	return s, kv
}

func seedPartition(t *testing.T, kv *persistence.MemoryKV, key string, list []domain.Resource) {
	t.Helper()
	raw, err := json.Marshal(list)
	require.NoError(t, err)
	require.NoError(t, kv.Set(context.Background(), key, string(raw)))
}

func partitionContents(t *testing.T, kv *persistence.MemoryKV, key string) []domain.Resource {
	t.Helper()
	raw, ok, err := kv.Get(context.Background(), key)
	require.NoError(t, err)
	require.True(t, ok, "partition %s missing", key)
	var list []domain.Resource
	require.NoError(t, json.Unmarshal([]byte(raw), &list))
	return list
}

func TestLoadSeedsBootstrapWhenEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Load(context.Background()))

	resources := s.Resources()
	require.Len(t, resources, 2)

	require.Equal(t, domain.CategoryWater, resources[0].Category)
	require.Equal(t, domain.ResourceTypeNeed, resources[0].Type)
	require.Equal(t, "Clean Drinking Water", resources[0].Title)

	require.Equal(t, domain.CategoryShelter, resources[1].Category)
	require.Equal(t, domain.ResourceTypeOffer, resources[1].Type)
	require.Equal(t, "Temporary Housing Available", resources[1].Title)
}

func TestLoadDeduplicatesByID(t *testing.T) {
	s, kv := newTestStore(t)
	seedPartition(t, kv, KeyResourceRequests, []domain.Resource{
		{ID: "1", Type: domain.ResourceTypeNeed, Category: domain.CategoryWater, Title: "from requests"},
		{ID: "3", Type: domain.ResourceTypeNeed, Category: domain.CategoryFood, Title: "requests only"},
	})
	seedPartition(t, kv, KeyResources, []domain.Resource{
		{ID: "1", Type: domain.ResourceTypeOffer, Category: domain.CategorySafety, Title: "unrelated duplicate"},
		{ID: "2", Type: domain.ResourceTypeOffer, Category: domain.CategoryShelter, Title: "page only"},
	})

	require.NoError(t, s.Load(context.Background()))
	resources := s.Resources()
	require.Len(t, resources, 3)

	var withID1 []domain.Resource
	for _, res := range resources {
		if res.ID == "1" {
			withID1 = append(withID1, res)
		}
	}
	require.Len(t, withID1, 1)
	require.Equal(t, "from requests", withID1[0].Title, "requests partition wins ties")

	// Requests items first in original order, then novel page items.
	require.Equal(t, []string{"1", "3", "2"}, []string{resources[0].ID, resources[1].ID, resources[2].ID})
}

func TestLoadIgnoresCorruptPartition(t *testing.T) {
	s, kv := newTestStore(t)
	require.NoError(t, kv.Set(context.Background(), KeyResourceRequests, "{not json"))
	seedPartition(t, kv, KeyResources, []domain.Resource{
		{ID: "9", Type: domain.ResourceTypeOffer, Category: domain.CategoryMedical, Title: "still visible"},
	})

	require.NoError(t, s.Load(context.Background()))
	resources := s.Resources()
	require.Len(t, resources, 1)
	require.Equal(t, "9", resources[0].ID)
}

func TestAddResourceAssignsUniqueIDsMostRecentFirst(t *testing.T) {
	s, _ := newTestStore(t)
	fixed := time.UnixMilli(1700000000000)
	s.now = func() time.Time { return fixed }
	require.NoError(t, s.Load(context.Background()))

	ctx := context.Background()
	seen := make(map[string]struct{})
	var lastAdded string
	for i := 0; i < 5; i++ {
		created, err := s.AddResource(ctx, domain.Resource{
			Type:     domain.ResourceTypeNeed,
			Category: domain.CategoryFood,
			Title:    "Meals",
			UserID:   "user-1",
		})
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		_, dup := seen[created.ID]
		require.False(t, dup, "duplicate id %s", created.ID)
		seen[created.ID] = struct{}{}
		lastAdded = created.ID
	}

	resources := s.Resources()
	require.Equal(t, lastAdded, resources[0].ID, "most recent first")
	require.Equal(t, fixed.UnixMilli(), resources[0].CreatedAt)
}

func TestAddResourcePartitionRouting(t *testing.T) {
	ctx := context.Background()

	t.Run("with user id goes to requests partition", func(t *testing.T) {
		s, kv := newTestStore(t)
		_, err := s.AddResource(ctx, domain.Resource{Title: "water", UserID: "user-1"})
		require.NoError(t, err)
		require.Len(t, partitionContents(t, kv, KeyResourceRequests), 1)
		_, ok, err := kv.Get(ctx, KeyResources)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("anonymous goes to page partition", func(t *testing.T) {
		s, kv := newTestStore(t)
		_, err := s.AddResource(ctx, domain.Resource{Title: "blankets"})
		require.NoError(t, err)
		require.Len(t, partitionContents(t, kv, KeyResources), 1)
		_, ok, err := kv.Get(ctx, KeyResourceRequests)
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestUpdateResourceStatusPatchesBothPartitions(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()
	seedPartition(t, kv, KeyResourceRequests, []domain.Resource{
		{ID: "1", Title: "dup", Status: domain.ResourceStatusPending},
	})
	seedPartition(t, kv, KeyResources, []domain.Resource{
		{ID: "1", Title: "dup", Status: domain.ResourceStatusPending},
		{ID: "2", Title: "other", Status: domain.ResourceStatusPending},
	})
	require.NoError(t, s.Load(ctx))

	updated, err := s.UpdateResourceStatus(ctx, "1", domain.ResourceStatusResolved)
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Equal(t, domain.ResourceStatusResolved, updated.Status)

	for _, res := range s.Resources() {
		if res.ID == "1" {
			require.Equal(t, domain.ResourceStatusResolved, res.Status)
		}
	}
	require.Equal(t, domain.ResourceStatusResolved, partitionContents(t, kv, KeyResourceRequests)[0].Status)
	pageList := partitionContents(t, kv, KeyResources)
	require.Equal(t, domain.ResourceStatusResolved, pageList[0].Status)
	require.Equal(t, domain.ResourceStatusPending, pageList[1].Status, "unrelated record untouched")
}

func TestUpdateResourceStatusUnknownIDIsNoOp(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()
	seedPartition(t, kv, KeyResourceRequests, []domain.Resource{
		{ID: "1", Title: "only", Status: domain.ResourceStatusPending},
	})
	require.NoError(t, s.Load(ctx))

	updated, err := s.UpdateResourceStatus(ctx, "does-not-exist", domain.ResourceStatusResolved)
	require.NoError(t, err)
	require.Nil(t, updated)

	require.Equal(t, domain.ResourceStatusPending, partitionContents(t, kv, KeyResourceRequests)[0].Status)
	require.Equal(t, domain.ResourceStatusPending, s.Resources()[0].Status)
}

func TestAddAndLoadResponses(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	created, err := s.AddResponse(ctx, "user-1", domain.ResourceResponse{
		RequestID: "42",
		Type:      domain.ResponseTypeOffer,
		Category:  domain.CategoryWater,
		Title:     "I can deliver water",
		Status:    domain.ResponseStatusPending,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.NotZero(t, created.CreatedAt)

	// Corrupt partition for another user skips only that user's records.
	require.NoError(t, kv.Set(ctx, ResponseKey("user-2"), "][ nope"))

	require.NoError(t, s.Load(ctx))
	responses := s.Responses()
	require.Len(t, responses, 1)
	require.Equal(t, created.ID, responses[0].ID)
}

func TestUpdateResponse(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.AddResponse(ctx, "user-1", domain.ResourceResponse{
		RequestID: "42",
		Type:      domain.ResponseTypeOffer,
		Category:  domain.CategoryMedical,
		Title:     "First aid kits",
		Status:    domain.ResponseStatusPending,
	})
	require.NoError(t, err)

	t.Run("unknown id is a no-op", func(t *testing.T) {
		updated, err := s.UpdateResponse(ctx, "user-1", "missing", ResponsePatch{
			Status: statusPtr(domain.ResponseStatusAccepted),
		})
		require.NoError(t, err)
		require.Nil(t, updated)
		require.Equal(t, domain.ResponseStatusPending, s.Responses()[0].Status)
	})

	t.Run("match preserves untouched fields", func(t *testing.T) {
		updated, err := s.UpdateResponse(ctx, "user-1", created.ID, ResponsePatch{
			Status: statusPtr(domain.ResponseStatusAccepted),
		})
		require.NoError(t, err)
		require.NotNil(t, updated)
		require.Equal(t, domain.ResponseStatusAccepted, updated.Status)
		require.Equal(t, "First aid kits", updated.Title)
		require.Equal(t, "42", updated.RequestID)
		require.Equal(t, created.CreatedAt, updated.CreatedAt)
	})
}

func TestStartReloadsOnMutationEvents(t *testing.T) {
	kv := persistence.NewMemoryKV()
	dispatcher := events.NewInMemoryDispatcher()
	s := New(kv, dispatcher, zap.NewNop())
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))

	// Simulate another writer mutating a partition directly, then
	// announcing the change in-process.
	seedPartition(t, kv, KeyResourceRequests, []domain.Resource{
		{ID: "77", Title: "externally written"},
	})
	require.NoError(t, dispatcher.Publish(ctx, events.New(events.EventResourceCreated, KeyResourceRequests, nil)))

	resources := s.Resources()
	require.Len(t, resources, 1)
	require.Equal(t, "77", resources[0].ID)
}

func TestWatchedKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{KeyResourceRequests, true},
		{KeyResources, true},
		{ResponseKey("user-1"), true},
		{"authUser", false},
		{"chat_contact-1", false},
		{"unrelated", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, WatchedKey(tt.key), "key %s", tt.key)
	}
}

func statusPtr(s domain.ResponseStatus) *domain.ResponseStatus {
	return &s
}
