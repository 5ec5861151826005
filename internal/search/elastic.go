// Package search maintains and queries the Elasticsearch product index.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"
	"github.com/google/uuid"

	"github.com/Skotchmaster/car_export/internal/models"
)

var searchFields = []string{
	"title^3", "model^2", "chassis", "color", "axleConfiguration", "vehicleGrade", "description",
}

// Document is the indexed projection of a product.
type Document struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Model             string  `json:"model"`
	Chassis           string  `json:"chassis"`
	Color             string  `json:"color"`
	AxleConfiguration string  `json:"axleConfiguration"`
	VehicleGrade      string  `json:"vehicleGrade"`
	Description       string  `json:"description"`
	FuelType          string  `json:"fuelType"`
	Year              int     `json:"year"`
	UnitPrice         float64 `json:"unitPrice"`
	Category          string  `json:"category,omitempty"`
	Make              string  `json:"make,omitempty"`
}

func DocumentFromProduct(p *models.Product) Document {
	doc := Document{
		ID:                p.ID.String(),
		Title:             p.Title,
		Model:             p.Model,
		Chassis:           p.Chassis,
		Color:             p.Color,
		AxleConfiguration: p.AxleConfiguration,
		VehicleGrade:      p.VehicleGrade,
		Description:       p.Description,
		FuelType:          p.FuelType,
		Year:              p.Year,
		UnitPrice:         p.UnitPrice,
	}
	if p.Category != nil {
		doc.Category = p.Category.Name
	}
	if p.Make != nil {
		doc.Make = p.Make.Name
	}
	return doc
}

type Config struct {
	URL      string
	User     string
	Password string
	Index    string
}

type Client struct {
	es    *elasticsearch.Client
	index string
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.User,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := es.Info(es.Info.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, responseError("info", res)
	}

	return &Client{es: es, index: cfg.Index}, nil
}

func responseError(op string, res *esapi.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	return fmt.Errorf("elasticsearch %s: %s: %s", op, res.Status(), bytes.TrimSpace(body))
}

const indexMapping = `{
  "mappings": {
    "properties": {
      "id":                {"type": "keyword"},
      "title":             {"type": "text"},
      "model":             {"type": "text"},
      "chassis":           {"type": "text"},
      "color":             {"type": "text"},
      "axleConfiguration": {"type": "text"},
      "vehicleGrade":      {"type": "text"},
      "description":       {"type": "text"},
      "fuelType":          {"type": "keyword"},
      "year":              {"type": "integer"},
      "unitPrice":         {"type": "double"},
      "category":          {"type": "keyword"},
      "make":              {"type": "keyword"}
    }
  }
}`

// EnsureIndex creates the product index with its mapping when it does not exist yet.
func (c *Client) EnsureIndex(ctx context.Context) error {
	res, err := c.es.Indices.Exists([]string{c.index}, c.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return err
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = c.es.Indices.Create(c.index,
		c.es.Indices.Create.WithContext(ctx),
		c.es.Indices.Create.WithBody(bytes.NewBufferString(indexMapping)),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("create index", res)
	}
	return nil
}

func (c *Client) IndexProduct(ctx context.Context, doc Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	res, err := c.es.Index(c.index, bytes.NewReader(body),
		c.es.Index.WithContext(ctx),
		c.es.Index.WithDocumentID(doc.ID),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index", res)
	}
	return nil
}

// DeleteProduct removes the document; a missing document is not an error.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	res, err := c.es.Delete(c.index, id, c.es.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete", res)
	}
	return nil
}

// BulkIndex upserts docs in one request.
func (c *Client) BulkIndex(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, doc := range docs {
		meta := map[string]any{"index": map[string]any{"_index": c.index, "_id": doc.ID}}
		if err := enc.Encode(meta); err != nil {
			return err
		}
		if err := enc.Encode(doc); err != nil {
			return err
		}
	}

	res, err := c.es.Bulk(&buf, c.es.Bulk.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("bulk", res)
	}

	var r struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			ID    string          `json:"_id"`
			Error json.RawMessage `json:"error"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return err
	}
	if !r.Errors {
		return nil
	}
	for _, item := range r.Items {
		for _, result := range item {
			if len(result.Error) > 0 {
				return fmt.Errorf("elasticsearch bulk: document %s: %s", result.ID, result.Error)
			}
		}
	}
	return fmt.Errorf("elasticsearch bulk: errors reported")
}

// Search runs a fuzzy multi_match query and returns matching product ids in rank order.
func (c *Client) Search(ctx context.Context, query string, from, size int) (int64, []uuid.UUID, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    searchFields,
				"fuzziness": "AUTO",
			},
		},
		"from":    from,
		"size":    size,
		"_source": false,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(&buf),
		c.es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, responseError("search", res)
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	ids := make([]uuid.UUID, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return r.Hits.Total.Value, ids, nil
}

func (c *Client) Ping(ctx context.Context) error {
	res, err := c.es.Ping(c.es.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("ping", res)
	}
	return nil
}
