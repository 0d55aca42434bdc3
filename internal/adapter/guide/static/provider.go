package staticguide

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Provider serves the player guide from a directory of static files. The
// index lists available topics; topic files are plain markdown.
type Provider struct {
	Root string
}

func (p Provider) Index(_ context.Context) ([]byte, error) {
	return os.ReadFile(filepath.Join(p.Root, "index.json"))
}

func (p Provider) File(_ context.Context, path string) ([]byte, error) {
	safePath, err := secureJoin(p.Root, path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(safePath)
}

var ErrInvalidGuidePath = errors.New("invalid guide filepath")

func secureJoin(root, rel string) (string, error) {
	rel = strings.TrimSpace(rel)
	if rel == "" {
		return "", ErrInvalidGuidePath
	}
	if filepath.IsAbs(rel) {
		return "", ErrInvalidGuidePath
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	target := filepath.Clean(filepath.Join(rootAbs, rel))
	prefix := rootAbs + string(filepath.Separator)
	if target != rootAbs && !strings.HasPrefix(target, prefix) {
		return "", ErrInvalidGuidePath
	}
	return target, nil
}
