package refresh

import (
	"context"

	"github.com/ytget/cloud-drives/internal/model"
)

// Fetcher queries the usage of one remote. It must not panic and reports
// failures inside the returned snapshot.
type Fetcher interface {
	About(ctx context.Context, remote string) model.StatusSnapshot
}

// Refresher defines the interface for the refresh service.
type Refresher interface {
	SetUpdateCallback(func(model.StatusSnapshot))
	Refresh(remote string) string
	RefreshAll(remotes []string) []string
	Forget(remote string)
	Pending() int
	Close()
}
