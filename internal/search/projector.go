// internal/search/projector.go
package search

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Projector applies product writes to the mirror after the store has
// committed. The mirror is an eventually consistent projection: a failed
// write is logged and dropped, leaving it stale until the next write to the
// same product.
type Projector struct {
	mirror Mirror
}

func NewProjector(mirror Mirror) *Projector {
	return &Projector{mirror: mirror}
}

func (p *Projector) IndexProduct(ctx context.Context, record Record) bool {
	if !p.mirror.Configured() {
		return false
	}
	return p.report("upsert", record.ObjectID, p.mirror.Upsert(ctx, record))
}

// UpdateProduct sends only the given fields. An empty change set is skipped.
func (p *Projector) UpdateProduct(ctx context.Context, objectID string, fields Fields) bool {
	if !p.mirror.Configured() || len(fields) == 0 {
		return false
	}
	return p.report("partial_update", objectID, p.mirror.PartialUpdate(ctx, objectID, fields))
}

func (p *Projector) RemoveProduct(ctx context.Context, objectID string) bool {
	if !p.mirror.Configured() {
		return false
	}
	return p.report("delete", objectID, p.mirror.Delete(ctx, objectID))
}

func (p *Projector) report(op, objectID string, err error) bool {
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"product_id": objectID,
			"op":         op,
		}).WithError(err).Warn("Search mirror write failed")
		return false
	}
	return true
}
