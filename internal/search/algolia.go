// internal/search/algolia.go
package search

import (
	"context"
	"fmt"

	"github.com/algolia/algoliasearch-client-go/v3/algolia/opt"
	algolia "github.com/algolia/algoliasearch-client-go/v3/algolia/search"
	"github.com/algolia/algoliasearch-client-go/v3/algolia/transport"
	"github.com/sirupsen/logrus"

	"github.com/bazarco/backend/internal/config"
)

// AlgoliaMirror keeps one index handle for the life of the process.
type AlgoliaMirror struct {
	index *algolia.Index
}

// NewAlgoliaMirror returns an unconfigured mirror when either credential is
// missing. Read and write calls are bounded by cfg.Timeout and by the
// caller's context.
func NewAlgoliaMirror(cfg config.AlgoliaConfig) *AlgoliaMirror {
	return newAlgoliaMirror(cfg, nil)
}

// newAlgoliaMirror uses the client's default HTTP requester when requester
// is nil.
func newAlgoliaMirror(cfg config.AlgoliaConfig, requester transport.Requester) *AlgoliaMirror {
	if !cfg.Configured() {
		logrus.Info("Algolia credentials not set, keyword search uses the catalog store")
		return &AlgoliaMirror{}
	}

	client := algolia.NewClientWithConfig(algolia.Configuration{
		AppID:        cfg.AppID,
		APIKey:       cfg.WriteKey,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		Requester:    requester,
	})

	logrus.WithField("index", cfg.IndexName).Info("Algolia search mirror configured")
	return &AlgoliaMirror{index: client.InitIndex(cfg.IndexName)}
}

func (m *AlgoliaMirror) Configured() bool {
	return m.index != nil
}

func (m *AlgoliaMirror) Search(ctx context.Context, query Query) (Result, error) {
	if !m.Configured() {
		return Result{}, ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	res, err := m.index.Search(query.Text,
		ctx,
		opt.Filters(BuildFilter(query.Category, query.Tags)),
		opt.Page(query.Page),
		opt.HitsPerPage(query.HitsPerPage),
		opt.AttributesToRetrieve(retrievedAttributes...),
	)
	if err != nil {
		return Result{}, fmt.Errorf("algolia search: %w", err)
	}

	var hits []Hit
	if err := res.UnmarshalHits(&hits); err != nil {
		return Result{}, fmt.Errorf("algolia hits: %w", err)
	}

	return Result{
		Hits:    hits,
		NbHits:  res.NbHits,
		Page:    res.Page,
		NbPages: res.NbPages,
	}, nil
}

func (m *AlgoliaMirror) Upsert(ctx context.Context, record Record) error {
	if !m.Configured() {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := m.index.SaveObject(record, ctx); err != nil {
		return fmt.Errorf("algolia save: %w", err)
	}
	return nil
}

func (m *AlgoliaMirror) PartialUpdate(ctx context.Context, objectID string, fields Fields) error {
	if !m.Configured() {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	object := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		object[k] = v
	}
	object["objectID"] = objectID

	if _, err := m.index.PartialUpdateObject(object, ctx); err != nil {
		return fmt.Errorf("algolia partial update: %w", err)
	}
	return nil
}

func (m *AlgoliaMirror) Delete(ctx context.Context, objectID string) error {
	if !m.Configured() {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := m.index.DeleteObject(objectID, ctx); err != nil {
		return fmt.Errorf("algolia delete: %w", err)
	}
	return nil
}
