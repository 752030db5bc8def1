package services

import (
	"context"
	"encoding/json"
	"log"
	"net/url"
	"strconv"

	"storefront/adapters"
	"storefront/models"
)

const (
	searchPath = "/wlm/walmart-search-by-keyword"
	bestMatch  = "best_match"
)

// Searcher is the fetch-by-query contract the feed depends on.
type Searcher interface {
	Search(ctx context.Context, term string, page, pageSize int) ([]models.Product, error)
}

type getter interface {
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
}

type SearchService struct {
	client getter
}

func NewSearchService(client *HTTPClient) *SearchService {
	return &SearchService{client: client}
}

// Search fetches one page of results. Shape anomalies in the upstream payload
// come back as an empty result; only transport failures are errors. pageSize
// is decided upstream and only kept for the contract.
func (s *SearchService) Search(ctx context.Context, term string, page, pageSize int) ([]models.Product, error) {
	if page < 1 {
		page = 1
	}

	query := url.Values{}
	query.Set("keyword", term)
	query.Set("page", strconv.Itoa(page))
	query.Set("sortBy", bestMatch)

	body, err := s.client.Get(ctx, searchPath, query)
	if err != nil {
		return nil, err
	}

	var envelope models.SearchEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		log.Println("malformed-response:", err)
		return []models.Product{}, nil
	}

	raws, ok := envelope.Items()
	if !ok {
		log.Println("malformed-response: missing items for", term, page)
		return []models.Product{}, nil
	}

	return filterProducts(adapters.Products(decodeItems(raws))), nil
}

// decodeItems drops, and logs, the items that do not fit RawProduct.
func decodeItems(items []json.RawMessage) []models.RawProduct {
	raws := make([]models.RawProduct, 0, len(items))
	for i, item := range items {
		var raw models.RawProduct
		if err := json.Unmarshal(item, &raw); err != nil {
			log.Println("skipping item", i, err)
			continue
		}
		raws = append(raws, raw)
	}
	return raws
}

func filterProducts(products []models.Product) []models.Product {
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Id == 0 || p.Name == "" || p.Price == 0 {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}
