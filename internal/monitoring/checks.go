package monitoring

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/aquaalert/aquaalert/internal/database"
	"github.com/aquaalert/aquaalert/internal/docstore"
)

const defaultProbeTimeout = 2 * time.Second

// DatabaseCheck pings the relational database.
func DatabaseCheck(db *gorm.DB, timeout time.Duration) Check {
	return Check{Name: "database", Run: func(ctx context.Context) ProbeResult {
		start := time.Now()
		if db == nil {
			return ProbeResult{Status: StatusDown, Details: "database not configured"}
		}

		probeCtx, cancel := context.WithTimeout(ctx, chooseTimeout(timeout))
		defer cancel()
		return ResultFromError(database.Ping(probeCtx, db), time.Since(start))
	}}
}

// DocumentStoreCheck loads the document structure from its backend.
func DocumentStoreCheck(store *docstore.Store, timeout time.Duration) Check {
	return Check{Name: "documents", Run: func(ctx context.Context) ProbeResult {
		start := time.Now()
		if store == nil {
			return ProbeResult{Status: StatusDown, Details: "document store not configured"}
		}

		probeCtx, cancel := context.WithTimeout(ctx, chooseTimeout(timeout))
		defer cancel()
		_, err := store.All(probeCtx, "alerts")
		return ResultFromError(err, time.Since(start))
	}}
}

func chooseTimeout(provided time.Duration) time.Duration {
	if provided <= 0 {
		return defaultProbeTimeout
	}
	return provided
}
