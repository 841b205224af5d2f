package models

// Book is a catalog entry as shown to shoppers. Books are not stored;
// they come from the catalog provider or the built-in fallback list.
type Book struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Author       string  `json:"author"`
	Year         int     `json:"year"`
	Pages        int     `json:"pages"`
	Price        float64 `json:"price"`
	CoverURL     string  `json:"coverUrl"`
	Description  string  `json:"description"`
	ISBN         string  `json:"isbn"`
	Rating       float64 `json:"rating"`
	RatingsCount int     `json:"ratingsCount"`
}
