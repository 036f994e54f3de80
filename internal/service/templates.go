package service

import "github.com/spec-kit/relief-service/internal/domain"

// ResourceTemplate is a canned posting users can instantiate instead of
// filling the full form.
type ResourceTemplate struct {
	ID          string                  `json:"id"`
	Type        domain.ResourceType     `json:"type"`
	Category    domain.ResourceCategory `json:"category"`
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Urgent      bool                    `json:"urgent,omitempty"`
	Items       []domain.ResourceItem   `json:"items,omitempty"`
}

var resourceTemplates = []ResourceTemplate{
	{
		ID:          "need-water",
		Type:        domain.ResourceTypeNeed,
		Category:    domain.CategoryWater,
		Title:       "Drinking Water Needed",
		Description: "Bottled or purified drinking water for affected households.",
		Urgent:      true,
		Items:       []domain.ResourceItem{{Name: "Bottled water (1L)", Quantity: 50}},
	},
	{
		ID:          "need-shelter",
		Type:        domain.ResourceTypeNeed,
		Category:    domain.CategoryShelter,
		Title:       "Emergency Shelter Needed",
		Description: "Temporary accommodation for displaced families.",
		Urgent:      true,
	},
	{
		ID:          "need-food",
		Type:        domain.ResourceTypeNeed,
		Category:    domain.CategoryFood,
		Title:       "Food Packs Needed",
		Description: "Ready-to-eat meals or dry rations.",
		Items:       []domain.ResourceItem{{Name: "Family food pack", Quantity: 20}},
	},
	{
		ID:          "need-medical",
		Type:        domain.ResourceTypeNeed,
		Category:    domain.CategoryMedical,
		Title:       "Medical Supplies Needed",
		Description: "First aid kits and prescription medicine support.",
		Urgent:      true,
	},
	{
		ID:          "offer-supplies",
		Type:        domain.ResourceTypeOffer,
		Category:    domain.CategorySupplies,
		Title:       "Relief Supplies Available",
		Description: "Blankets, hygiene kits, and clothing ready for pickup.",
		Items:       []domain.ResourceItem{{Name: "Hygiene kit", Quantity: 30}},
	},
	{
		ID:          "offer-safety",
		Type:        domain.ResourceTypeOffer,
		Category:    domain.CategorySafety,
		Title:       "Evacuation Transport Available",
		Description: "Van transport to evacuation centers, driver included.",
	},
}

// Templates lists the available canned postings.
func Templates() []ResourceTemplate {
	out := make([]ResourceTemplate, len(resourceTemplates))
	copy(out, resourceTemplates)
	return out
}

// TemplateByID looks up a template.
func TemplateByID(id string) (ResourceTemplate, bool) {
	for _, tpl := range resourceTemplates {
		if tpl.ID == id {
			return tpl, true
		}
	}
	return ResourceTemplate{}, false
}
