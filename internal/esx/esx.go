// Package esx keeps an Elasticsearch index of projects for full-text search.
package esx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	es8 "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/samber/lo"

	"portfolio-api/internal/config"
	"portfolio-api/internal/model"
)

type Client = es8.Client

// Index is the project search index. A nil *Index means search is disabled
// and every write is a no-op.
type Index struct {
	es   *Client
	name string
}

// Open builds an Index from cfg.ES. It returns nil when no address is set.
func Open(cfg *config.Config) (*Index, func(), error) {
	addrs := lo.FilterMap(strings.Split(cfg.ES.Addrs, ","), func(s string, _ int) (string, bool) {
		t := strings.TrimSpace(s)
		return t, t != ""
	})
	if len(addrs) == 0 {
		return nil, func() {}, nil
	}
	es, err := es8.NewClient(es8.Config{Addresses: addrs, Username: cfg.ES.Username, Password: cfg.ES.Password})
	if err != nil {
		return nil, func() {}, err
	}
	return NewIndex(es, cfg.ES.Index), func() {}, nil
}

func NewIndex(es *Client, name string) *Index {
	return &Index{es: es, name: lo.Ternary(name != "", name, "projects")}
}

// Enabled reports whether searches can be served.
func (ix *Index) Enabled() bool { return ix != nil && ix.es != nil }

// ProjectDoc is the indexed subset of a project.
type ProjectDoc struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	LongDescription string   `json:"longDescription,omitempty"`
	Technologies    []string `json:"technologies"`
	Category        string   `json:"category"`
	Status          string   `json:"status"`
	Featured        bool     `json:"featured"`
}

func docOf(p *model.Project) ProjectDoc {
	return ProjectDoc{
		Title:           p.Title,
		Description:     p.Description,
		LongDescription: p.LongDescription,
		Technologies:    p.Technologies,
		Category:        string(p.Category),
		Status:          string(p.Status),
		Featured:        p.Featured,
	}
}

// PutProject indexes p under its id, replacing any previous version.
func (ix *Index) PutProject(ctx context.Context, p *model.Project) error {
	if !ix.Enabled() {
		return nil
	}
	b, err := json.Marshal(docOf(p))
	if err != nil {
		return err
	}
	res, err := ix.es.Index(ix.name, bytes.NewReader(b),
		ix.es.Index.WithDocumentID(p.ID),
		ix.es.Index.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError(res)
	}
	return nil
}

// DeleteProject removes id from the index. A missing document is not an error.
func (ix *Index) DeleteProject(ctx context.Context, id string) error {
	if !ix.Enabled() {
		return nil
	}
	res, err := ix.es.Delete(ix.name, id, ix.es.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError(res)
	}
	return nil
}

// SearchProjects returns the ids of the projects matching q, best match first.
func (ix *Index) SearchProjects(ctx context.Context, q string, size int) ([]string, error) {
	if !ix.Enabled() {
		return nil, nil
	}
	b, err := json.Marshal(searchBody(q))
	if err != nil {
		return nil, err
	}
	res, err := ix.es.Search(
		ix.es.Search.WithContext(ctx),
		ix.es.Search.WithIndex(ix.name),
		ix.es.Search.WithBody(bytes.NewReader(b)),
		ix.es.Search.WithSize(size),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		// nothing indexed yet
		return []string{}, nil
	}
	if res.IsError() {
		return nil, responseError(res)
	}
	var out searchResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("esx: decode search response: %w", err)
	}
	return lo.Map(out.Hits.Hits, func(h hit, _ int) string { return h.ID }), nil
}

type hit struct {
	ID string `json:"_id"`
}

type searchResponse struct {
	Hits struct {
		Hits []hit `json:"hits"`
	} `json:"hits"`
}

func searchBody(q string) map[string]any {
	return map[string]any{
		"_source": false,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"title^3", "technologies^2", "description", "longDescription"},
				"fuzziness": "AUTO",
			},
		},
	}
}

func responseError(res *esapi.Response) error {
	return fmt.Errorf("esx: %s", res.String())
}
