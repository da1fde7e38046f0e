package marketplace

// Listing is a product offered on the marketplace panel.
type Listing struct {
	Title     string  `json:"title"`
	Available bool    `json:"available"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Delivery  string  `json:"delivery"`
	Category  string  `json:"category"`
	Location  string  `json:"location"`
	Image     string  `json:"image"`
}

// Filter narrows the listing set. Zero values match everything.
type Filter struct {
	Query    string
	Category string
	Location string
	Delivery string
	MinPrice *float64
	MaxPrice *float64
}

// DefaultListings is the catalog served when no database is configured.
func DefaultListings() []Listing {
	return []Listing{
		{Title: "Organic Wheat", Available: true, Quantity: 500, Price: 2, Delivery: "Available", Category: "Grains", Location: "USA", Image: "/images/wheat.jpg"},
		{Title: "Fresh Tomatoes", Available: true, Quantity: 200, Price: 1.5, Delivery: "Available", Category: "Vegetables", Location: "Mexico", Image: "/images/tomato.jpg"},
		{Title: "Apples", Available: true, Quantity: 300, Price: 1, Delivery: "Available", Category: "Fruits", Location: "USA", Image: "/images/apple.jpg"},
		{Title: "Corn", Available: true, Quantity: 400, Price: 0.8, Delivery: "Available", Category: "Grains", Location: "Mexico", Image: "/images/corn.jpg"},
	}
}
