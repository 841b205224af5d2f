package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"bookstore/internal/models"
	"bookstore/pkg/openlibrary"

	"golang.org/x/sync/errgroup"
)

const (
	searchLimit    = 40
	booksPerPage   = 24
	maxTitleLength = 50

	featuredWorkers  = 4
	featuredPerShelf = 4
)

// CatalogProvider searches an external book catalog.
type CatalogProvider interface {
	Search(ctx context.Context, title string, limit int) ([]openlibrary.Doc, error)
}

type priceRange struct{ min, max float64 }

type category struct {
	key    string
	query  string
	prices priceRange
}

// categories lists the shelves in display order.
var categories = []category{
	{"fiction", "fiction", priceRange{250, 450}},
	{"scifi", "science fiction", priceRange{300, 500}},
	{"romance", "romance", priceRange{200, 400}},
	{"mystery", "mystery thriller", priceRange{280, 480}},
	{"fantasy", "fantasy", priceRange{350, 550}},
	{"biography", "biography", priceRange{400, 700}},
	{"history", "history", priceRange{350, 600}},
	{"education", "education", priceRange{450, 800}},
	{"business", "business", priceRange{500, 900}},
	{"technology", "programming computer", priceRange{600, 1200}},
}

var defaultPrices = priceRange{200, 500}

func lookupCategory(key string) (category, bool) {
	for _, c := range categories {
		if c.key == key {
			return c, true
		}
	}
	return category{key: key, query: key, prices: defaultPrices}, false
}

// FeaturedShelf is one category's books on the landing page.
type FeaturedShelf struct {
	Category string        `json:"category"`
	Books    []models.Book `json:"books"`
}

// CatalogService browses books by category. Provider failures never reach
// the caller; a built-in list is served instead.
type CatalogService struct {
	provider CatalogProvider
	timeout  time.Duration
}

// NewCatalogService creates a new CatalogService. timeout bounds every
// provider call.
func NewCatalogService(provider CatalogProvider, timeout time.Duration) *CatalogService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CatalogService{
		provider: provider,
		timeout:  timeout,
	}
}

// Categories returns the known category keys in display order.
func (s *CatalogService) Categories() []string {
	keys := make([]string, len(categories))
	for i, c := range categories {
		keys[i] = c.key
	}
	return keys
}

// BooksByCategory returns up to 24 books for the category.
func (s *CatalogService) BooksByCategory(ctx context.Context, key string) []models.Book {
	cat, _ := lookupCategory(key)

	books, err := s.search(ctx, cat)
	if err != nil {
		log.Printf("Catalog for %s: %v, serving fallback list", key, err)
		return s.fallbackBooks(key)
	}
	return books
}

// Featured fetches several categories at once, a few books each. Keys are
// de-duplicated and capped at the number of known categories. The whole
// call shares one timeout; shelves still pending when it expires get the
// fallback list.
func (s *CatalogService) Featured(ctx context.Context, keys []string) []FeaturedShelf {
	keys = featuredKeys(keys)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	shelves := make([]FeaturedShelf, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(featuredWorkers)
	for i, key := range keys {
		g.Go(func() error {
			books := s.BooksByCategory(gctx, key)
			if len(books) > featuredPerShelf {
				books = books[:featuredPerShelf]
			}
			shelves[i] = FeaturedShelf{Category: key, Books: books}
			return nil
		})
	}
	_ = g.Wait() // BooksByCategory never fails
	return shelves
}

func featuredKeys(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(categories))
	for _, k := range keys {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
		if len(out) == len(categories) {
			break
		}
	}
	if len(out) == 0 {
		return []string{"fiction", "scifi", "mystery", "fantasy"}
	}
	return out
}

func (s *CatalogService) search(ctx context.Context, cat category) ([]models.Book, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("%w: no provider configured", ErrUpstreamUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	docs, err := s.provider.Search(ctx, cat.query, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	books := make([]models.Book, 0, booksPerPage)
	for i, doc := range docs {
		if doc.Title == "" || len(doc.AuthorName) == 0 || doc.AuthorName[0] == "" {
			continue
		}
		books = append(books, s.bookFromDoc(i, doc, cat))
		if len(books) == booksPerPage {
			break
		}
	}
	if len(books) == 0 {
		return nil, fmt.Errorf("%w: no books found for %q", ErrUpstreamUnavailable, cat.query)
	}
	return books, nil
}

func (s *CatalogService) bookFromDoc(i int, doc openlibrary.Doc, cat category) models.Book {
	id := strings.TrimPrefix(doc.Key, "/works/")
	if id == "" {
		id = fmt.Sprintf("book-%d", i)
	}

	cover := placeholderCover(doc.Title)
	if doc.CoverID != 0 {
		cover = fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-M.jpg", doc.CoverID)
	}

	year := doc.FirstPublishYear
	if year == 0 {
		year = time.Now().Year()
	}
	pages := doc.NumberOfPagesMedian
	if pages == 0 {
		pages = rand.IntN(400) + 150
	}

	description := "A great read"
	if len(doc.FirstSentence) > 0 && doc.FirstSentence[0] != "" {
		description = doc.FirstSentence[0]
	}
	isbn := ""
	if len(doc.ISBN) > 0 {
		isbn = doc.ISBN[0]
	}

	rating := doc.RatingsAverage
	if rating == 0 {
		rating = s.randomRating()
	}
	ratingsCount := doc.RatingsCount
	if ratingsCount == 0 {
		ratingsCount = rand.IntN(5000) + 100
	}

	return models.Book{
		ID:           id,
		Title:        truncate(doc.Title, maxTitleLength),
		Author:       doc.AuthorName[0],
		Year:         year,
		Pages:        pages,
		Price:        s.price(cat.prices),
		CoverURL:     cover,
		Description:  description,
		ISBN:         isbn,
		Rating:       round(rating, 1),
		RatingsCount: ratingsCount,
	}
}

func (s *CatalogService) fallbackBooks(key string) []models.Book {
	entries, ok := fallbackShelves[key]
	if !ok {
		entries = fallbackShelves["fiction"]
	}
	cat, _ := lookupCategory(key)

	books := make([]models.Book, len(entries))
	for i, e := range entries {
		books[i] = models.Book{
			ID:           fmt.Sprintf("default-%s-%d", key, i),
			Title:        e.title,
			Author:       e.author,
			Year:         e.year,
			Pages:        rand.IntN(400) + 150,
			Price:        s.price(cat.prices),
			CoverURL:     placeholderCover(e.title),
			Description:  fmt.Sprintf("%s by %s", e.title, e.author),
			Rating:       s.randomRating(),
			RatingsCount: rand.IntN(5000) + 100,
		}
	}
	return books
}

func (s *CatalogService) price(r priceRange) float64 {
	return round(r.min+rand.Float64()*(r.max-r.min), 2)
}

func (s *CatalogService) randomRating() float64 {
	return round(3.5+rand.Float64()*1.5, 1)
}

func placeholderCover(title string) string {
	return "https://via.placeholder.com/200x300?text=" + url.QueryEscape(truncate(title, 15))
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
