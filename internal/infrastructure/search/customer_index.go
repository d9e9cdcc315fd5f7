package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/customer-directory/internal/domain/entity"
)

const (
	DefaultIndex   = "customers"
	defaultSize    = 10
	maxSize        = 50
	requestTimeout = 3 * time.Second
)

// CustomerIndex mirrors customer views into Elasticsearch.
type CustomerIndex struct {
	es     *elasticsearch.Client
	index  string
	logger *logrus.Logger
}

func NewCustomerIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *CustomerIndex {
	if index == "" {
		index = DefaultIndex
	}
	return &CustomerIndex{es: es, index: index, logger: logger}
}

type customerDoc struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Gender          string  `json:"gender"`
	Age             int     `json:"age"`
	ProfileImageKey *string `json:"profile_image_key,omitempty"`
}

func (d customerDoc) view() entity.CustomerView {
	return entity.CustomerView{
		ID:              d.ID,
		Name:            d.Name,
		Email:           d.Email,
		Gender:          entity.Gender(d.Gender),
		Age:             d.Age,
		Roles:           entity.DefaultRoles(),
		Username:        d.Email,
		ProfileImageKey: d.ProfileImageKey,
	}
}

// customerMapping keeps email exact-matchable next to full-text search.
const customerMapping = `{
  "mappings": {
    "properties": {
      "id":                {"type": "long"},
      "name":              {"type": "text"},
      "email":             {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "gender":            {"type": "keyword"},
      "age":               {"type": "integer"},
      "profile_image_key": {"type": "keyword", "index": false}
    }
  }
}`

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (x *CustomerIndex) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	exists, err := esapi.IndicesExistsRequest{Index: []string{x.index}}.Do(c, x.es)
	if err != nil {
		return fmt.Errorf("es index exists %s: %w", x.index, err)
	}
	_ = exists.Body.Close()
	if exists.StatusCode == 200 {
		return nil
	}
	if exists.StatusCode != 404 {
		return fmt.Errorf("es index exists %s: %s", x.index, exists.Status())
	}

	res, err := esapi.IndicesCreateRequest{Index: x.index, Body: strings.NewReader(customerMapping)}.Do(c, x.es)
	if err != nil {
		return fmt.Errorf("es create index %s: %w", x.index, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es create index %s: %s", x.index, res.Status())
	}
	x.logger.WithField("index", x.index).Info("customer index created")
	return nil
}

func (x *CustomerIndex) IndexCustomer(ctx context.Context, v entity.CustomerView) error {
	b, err := json.Marshal(customerDoc{
		ID:              v.ID,
		Name:            v.Name,
		Email:           v.Email,
		Gender:          string(v.Gender),
		Age:             v.Age,
		ProfileImageKey: v.ProfileImageKey,
	})
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      x.index,
		DocumentID: strconv.FormatInt(v.ID, 10),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := req.Do(c, x.es)
	if err != nil {
		return fmt.Errorf("es index customer %d: %w", v.ID, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index customer %d: %s", v.ID, res.Status())
	}
	return nil
}

func (x *CustomerIndex) RemoveCustomer(ctx context.Context, id int64) error {
	req := esapi.DeleteRequest{Index: x.index, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := req.Do(c, x.es)
	if err != nil {
		return fmt.Errorf("es delete customer %d: %w", id, err)
	}
	defer func() { _ = res.Body.Close() }()
	// a document that was never indexed is already gone
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete customer %d: %s", id, res.Status())
	}
	return nil
}

// SearchCustomers runs a multi_match over email and name, email weighted higher.
func (x *CustomerIndex) SearchCustomers(ctx context.Context, q string, size int) ([]entity.CustomerView, error) {
	if size <= 0 || size > maxSize {
		size = defaultSize
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.es.Search(
		x.es.Search.WithContext(c),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		x.logger.WithField("status", res.Status()).Warn("es search response error")
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source customerDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.CustomerView, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source.view())
	}
	return out, nil
}
