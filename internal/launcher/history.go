package launcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dshills/launchrank/internal/config"
	"github.com/dshills/launchrank/internal/frecency"
	"github.com/dshills/launchrank/internal/storage"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenStore loads the frecency store from the configured backend. The
// closer releases the backend and must be called after the last Persist.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...frecency.Option) (*frecency.Store, io.Closer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts = append([]frecency.Option{frecency.WithLogger(logger)}, opts...)
	path := cfg.ResolvedHistoryPath()

	switch cfg.HistoryBackend {
	case config.BackendSQLite:
		db, err := storage.NewSQLiteHistory(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open history database: %w", err)
		}
		logger.Debug("using sqlite history", "path", path, "driver", storage.DriverName, "build", storage.BuildMode)
		return frecency.Load(ctx, db, opts...), db, nil
	case config.BackendJSON, "":
		return frecency.Load(ctx, frecency.NewFileBackend(path), opts...), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown history backend %q", config.ErrInvalidConfig, cfg.HistoryBackend)
	}
}
