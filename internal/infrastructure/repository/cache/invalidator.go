package cache

import (
	"context"

	basecache "github.com/riskibarqy/nfl-insights/internal/platform/cache"
	"github.com/riskibarqy/nfl-insights/internal/platform/logging"
	"github.com/riskibarqy/nfl-insights/internal/usecase"
)

// Purger drops shared cache entries by key prefix.
type Purger interface {
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}

// Invalidator flushes cached reads once a sync or rank job has committed.
type Invalidator struct {
	local  *basecache.Store
	remote Purger
	prefix string
	logger *logging.Logger
}

// NewInvalidator accepts a nil local store or remote purger when that tier
// is disabled.
func NewInvalidator(local *basecache.Store, remote Purger, prefix string, logger *logging.Logger) *Invalidator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Invalidator{local: local, remote: remote, prefix: prefix, logger: logger}
}

func (i *Invalidator) OnCommit(ctx context.Context, event usecase.CommitEvent) error {
	localRemoved := 0
	if i.local != nil {
		localRemoved = i.local.DeletePrefix(ctx, i.prefix)
	}

	remoteRemoved := 0
	if i.remote != nil {
		n, err := i.remote.DeletePrefix(ctx, i.prefix)
		if err != nil {
			return err
		}
		remoteRemoved = n
	}

	i.logger.DebugContext(ctx, "cache invalidated",
		"job", event.Job,
		"prefix", i.prefix,
		"local_removed", localRemoved,
		"remote_removed", remoteRemoved,
	)
	return nil
}
