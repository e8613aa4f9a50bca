package catalog

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	Description  string  `json:"description"`
	Availability bool    `json:"availability"`
	CategoryID   string  `json:"categoryId"`
}

// ProductSummary is the listing projection: detail without ids.
type ProductSummary struct {
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	Description  string  `json:"description"`
	Availability bool    `json:"availability"`
}
