package practices

// Tip is one sustainable-agriculture card.
type Tip struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// DefaultTips is the catalog served when no database is configured.
func DefaultTips() []Tip {
	return []Tip{
		{Title: "Organic Farming", Description: "Learn about organic farming techniques.", Image: "/images/farming.png"},
		{Title: "Soil Conservation", Description: "Discover soil conservation practices.", Image: "/images/soil.png"},
		{Title: "Water Saving Methods", Description: "Explore water saving methods.", Image: "/images/water_saving.png"},
		{Title: "Biodiversity", Description: "Enhance biodiversity on your farm.", Image: "/images/biodiversity.png"},
	}
}
