package ports

import "context"

// GuideProvider exposes the static player guide.
type GuideProvider interface {
	Index(ctx context.Context) ([]byte, error)
	File(ctx context.Context, path string) ([]byte, error)
}
