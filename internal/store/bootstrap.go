package store

import "github.com/spec-kit/relief-service/internal/domain"

// bootstrapResources returns the two records shown when both resource
// partitions are empty, so a fresh deployment never presents an empty
// board. They live only in the merged view and are never written back.
func bootstrapResources() []domain.Resource {
	return []domain.Resource{
		{
			ID:          "1",
			Type:        domain.ResourceTypeNeed,
			Category:    domain.CategoryWater,
			Title:       "Clean Drinking Water",
			Description: "Urgent need for bottled water for families in the evacuation center.",
			Location:    "Central Evacuation Center",
			Urgent:      true,
			CreatedAt:   1,
			Status:      domain.ResourceStatusPending,
		},
		{
			ID:          "2",
			Type:        domain.ResourceTypeOffer,
			Category:    domain.CategoryShelter,
			Title:       "Temporary Housing Available",
			Description: "Spare rooms available for up to two displaced families.",
			Location:    "Riverside District",
			CreatedAt:   2,
			Status:      domain.ResourceStatusPending,
		},
	}
}
