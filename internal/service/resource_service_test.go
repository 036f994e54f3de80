package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/relief-service/internal/domain"
	"github.com/spec-kit/relief-service/internal/events"
	"github.com/spec-kit/relief-service/internal/persistence"
	"github.com/spec-kit/relief-service/internal/store"
	apperrors "github.com/spec-kit/relief-service/pkg/util"
)

func newResourceService(t *testing.T) *ResourceService {
	t.Helper()
	st := store.New(persistence.NewMemoryKV(), events.NewInMemoryDispatcher(), zap.NewNop())
	require.NoError(t, st.Load(context.Background()))
	return NewResourceService(st)
}

func TestCreateValidation(t *testing.T) {
	svc := newResourceService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input ResourceCreateInput
	}{
		{"missing title", ResourceCreateInput{Type: domain.ResourceTypeNeed, Category: domain.CategoryWater, Location: "here"}},
		{"missing location", ResourceCreateInput{Type: domain.ResourceTypeNeed, Category: domain.CategoryWater, Title: "Water"}},
		{"bad type", ResourceCreateInput{Type: "plea", Category: domain.CategoryWater, Title: "Water", Location: "here"}},
		{"bad category", ResourceCreateInput{Type: domain.ResourceTypeNeed, Category: "air", Title: "Water", Location: "here"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.input)
			var domainErr *apperrors.DomainError
			require.ErrorAs(t, err, &domainErr)
			require.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		})
	}
}

func TestCreateDefaultsToPending(t *testing.T) {
	svc := newResourceService(t)
	created, err := svc.Create(context.Background(), ResourceCreateInput{
		Type:     domain.ResourceTypeNeed,
		Category: domain.CategoryFood,
		Title:    "Food Packs",
		Location: "Sector 4",
		UserID:   "u-1",
	})
	require.NoError(t, err)
	require.Equal(t, domain.ResourceStatusPending, created.Status)
	require.NotEmpty(t, created.ID)
	require.NotZero(t, created.CreatedAt)
}

func TestCreateFromTemplate(t *testing.T) {
	svc := newResourceService(t)
	created, err := svc.CreateFromTemplate(context.Background(), "need-water", "Barangay 12", "u-1", "Ana")
	require.NoError(t, err)
	require.Equal(t, domain.CategoryWater, created.Category)
	require.Equal(t, domain.ResourceTypeNeed, created.Type)
	require.Equal(t, "Barangay 12", created.Location)
	require.True(t, created.Urgent)
	require.NotEmpty(t, created.Items)

	_, err = svc.CreateFromTemplate(context.Background(), "no-such-template", "x", "", "")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestListFilters(t *testing.T) {
	svc := newResourceService(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, ResourceCreateInput{
		Type: domain.ResourceTypeNeed, Category: domain.CategoryWater, Title: "Water", Location: "A", Urgent: true, UserID: "u-1",
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, ResourceCreateInput{
		Type: domain.ResourceTypeOffer, Category: domain.CategoryFood, Title: "Meals", Location: "B",
	})
	require.NoError(t, err)

	needs := svc.List(ctx, ResourceFilter{Type: domain.ResourceTypeNeed})
	for _, res := range needs {
		require.Equal(t, domain.ResourceTypeNeed, res.Type)
	}

	urgent := svc.List(ctx, ResourceFilter{UrgentOnly: true})
	require.NotEmpty(t, urgent)
	for _, res := range urgent {
		require.True(t, res.Urgent)
	}
}

func TestUpdateStatusValidation(t *testing.T) {
	svc := newResourceService(t)
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, "1", "vanished")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, "VALIDATION_FAILED", domainErr.Code)

	_, err = svc.UpdateStatus(ctx, "no-such-id", domain.ResourceStatusResolved)
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestRespondRequiresUserAndFields(t *testing.T) {
	svc := newResourceService(t)
	ctx := context.Background()

	_, err := svc.Respond(ctx, "", domain.ResourceResponse{RequestID: "1", Title: "help"})
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, "UNAUTHORIZED", domainErr.Code)

	_, err = svc.Respond(ctx, "u-1", domain.ResourceResponse{Title: "help"})
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, "VALIDATION_FAILED", domainErr.Code)

	created, err := svc.Respond(ctx, "u-1", domain.ResourceResponse{
		RequestID: "1",
		Type:      domain.ResponseTypeOffer,
		Category:  domain.CategoryWater,
		Title:     "Water delivery",
	})
	require.NoError(t, err)
	require.Equal(t, domain.ResponseStatusPending, created.Status, "status defaults to pending")
}
