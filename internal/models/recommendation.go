package models

// Offer is a product that can be recommended to a client.
type Offer struct {
	Service     string `json:"service" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// Recommendation is an Offer ranked by urgency (1-5, 5 is highest).
type Recommendation struct {
	Service     string `json:"service"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
}

// Recommend builds a Recommendation for the offer with the given priority.
func (o Offer) Recommend(priority int) Recommendation {
	return Recommendation{
		Service:     o.Service,
		Description: o.Description,
		Priority:    priority,
	}
}

// Key identifies a recommendation for deduplication.
func (r Recommendation) Key() Offer {
	return Offer{Service: r.Service, Description: r.Description}
}

// Catalog maps merchant category codes to the offer recommended for them.
type Catalog map[int]Offer

// Lookup returns the offer for a category code.
func (c Catalog) Lookup(code int) (Offer, bool) {
	offer, ok := c[code]
	return offer, ok
}
