package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go-pos-inventory/internal/models"
)

const (
	stateFileName      = "appState.json"
	rememberedFileName = "rememberedUser"
)

// FileGateway keeps the snapshot as a JSON document in a directory.
type FileGateway struct {
	mu  sync.Mutex
	dir string
}

func NewFileGateway(dir string) (*FileGateway, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create state dir: %v", models.ErrStorage, err)
	}
	return &FileGateway{dir: dir}, nil
}

func (g *FileGateway) Load(ctx context.Context) (*models.Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(g.dir, stateFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read state: %v", models.ErrStorage, err)
	}

	snap, err := models.DecodeSnapshot(data)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (g *FileGateway) Save(ctx context.Context, snap models.Snapshot) error {
	data, err := models.EncodeSnapshot(snap)
	if err != nil {
		return fmt.Errorf("%w: encode state: %v", models.ErrStorage, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.writeAtomic(stateFileName, data)
}

func (g *FileGateway) RememberUser(ctx context.Context, username string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.writeAtomic(rememberedFileName, []byte(username))
}

func (g *FileGateway) ForgetUser(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	err := os.Remove(filepath.Join(g.dir, rememberedFileName))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: forget user: %v", models.ErrStorage, err)
	}
	return nil
}

func (g *FileGateway) RememberedUser(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(g.dir, rememberedFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: read remembered user: %v", models.ErrStorage, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// writeAtomic replaces name through a temp file so readers never see a
// partial document.
func (g *FileGateway) writeAtomic(name string, data []byte) error {
	tmp, err := os.CreateTemp(g.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", models.ErrStorage, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %v", models.ErrStorage, name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close %s: %v", models.ErrStorage, name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(g.dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replace %s: %v", models.ErrStorage, name, err)
	}
	return nil
}
