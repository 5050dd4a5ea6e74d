package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/okian/molkky/internal/domain/model"
	"github.com/okian/molkky/internal/domain/round"
	"github.com/okian/molkky/pkg/logger"
	"github.com/okian/molkky/pkg/metrics"
)

const documentVersion = 1

// document is the on-disk layout of a FileStore.
type document struct {
	Version int            `yaml:"version"`
	Players []model.Player `yaml:"players"`
	Rounds  []round.State  `yaml:"rounds"`
}

// FileStore is a MemoryStore mirrored to a YAML file. Every write rewrites
// the file through a temporary file and a rename, so a crash leaves either
// the old or the new document on disk.
type FileStore struct {
	*MemoryStore

	path string
	// writeMu orders the in-memory update and the file rewrite of each write.
	writeMu sync.Mutex
}

// NewFileStore opens the store at path, loading it when the file exists.
func NewFileStore(ctx context.Context, path string, opts ...Option) (*FileStore, error) {
	f := &FileStore{
		MemoryStore: NewMemoryStore(ctx, opts...),
		path:        path,
	}
	if err := f.open(ctx); err != nil {
		_ = f.MemoryStore.Close()
		return nil, err
	}
	return f, nil
}

func (f *FileStore) open(ctx context.Context) error {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		f.logger.Info(ctx, "starting with an empty store", logger.String("path", f.path))
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrPersist, f.path, err)
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrPersist, f.path, err)
	}
	for _, st := range doc.Rounds {
		if err := st.Validate(); err != nil {
			return fmt.Errorf("%w: round %s in %s: %w", ErrInvalidRound, st.ID, f.path, err)
		}
	}
	f.load(doc.Rounds, doc.Players)
	f.logger.Info(ctx, "store loaded",
		logger.String("path", f.path),
		logger.Int("rounds", len(doc.Rounds)),
		logger.Int("players", len(doc.Players)),
	)
	return nil
}

// SaveRound stores st and rewrites the file. When the file cannot be
// written the previous version of the round is put back.
func (f *FileStore) SaveRound(ctx context.Context, st round.State) error {
	f.writeMu.Lock()
	defer f.writeMu.Unlock()
	prev, existed := f.peekRound(st.ID)
	if err := f.MemoryStore.SaveRound(ctx, st); err != nil {
		return err
	}
	if err := f.persist(ctx); err != nil {
		f.putRound(st.ID, prev, existed)
		return err
	}
	return nil
}

// DeleteRound removes a round and rewrites the file. When the file cannot
// be written the round is put back.
func (f *FileStore) DeleteRound(ctx context.Context, id string) error {
	f.writeMu.Lock()
	defer f.writeMu.Unlock()
	prev, existed := f.peekRound(id)
	if err := f.MemoryStore.DeleteRound(ctx, id); err != nil {
		return err
	}
	if err := f.persist(ctx); err != nil {
		f.putRound(id, prev, existed)
		return err
	}
	return nil
}

// SavePlayer stores p and rewrites the file, undoing the change when the
// file cannot be written.
func (f *FileStore) SavePlayer(ctx context.Context, p model.Player) error {
	f.writeMu.Lock()
	defer f.writeMu.Unlock()
	prev, existed := f.peekPlayer(p.ID)
	if err := f.MemoryStore.SavePlayer(ctx, p); err != nil {
		return err
	}
	if err := f.persist(ctx); err != nil {
		f.putPlayer(p.ID, prev, existed)
		return err
	}
	return nil
}

// persist must be called with writeMu held.
func (f *FileStore) persist(ctx context.Context) error {
	start := time.Now()
	defer func() { metrics.RecordStoreSaveLatency(msSince(start)) }()

	rounds, _ := f.MemoryStore.ListRounds(ctx)
	players, _ := f.MemoryStore.ListPlayers(ctx)
	raw, err := yaml.Marshal(document{Version: documentVersion, Players: players, Rounds: rounds})
	if err != nil {
		return f.persistFailed(ctx, "encode", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+".*")
	if err != nil {
		return f.persistFailed(ctx, "create temp file", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return f.persistFailed(ctx, "write", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return f.persistFailed(ctx, "sync", err)
	}
	if err := tmp.Close(); err != nil {
		return f.persistFailed(ctx, "close", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return f.persistFailed(ctx, "rename", err)
	}
	return nil
}

func (f *FileStore) persistFailed(ctx context.Context, step string, err error) error {
	metrics.RecordErrorByComponent("repository", "persist")
	f.logger.Error(ctx, "failed to persist store",
		logger.String("path", f.path),
		logger.String("step", step),
		logger.Error(err),
	)
	return fmt.Errorf("%w: %s %s: %w", ErrPersist, step, f.path, err)
}

// Path returns the backing file.
func (f *FileStore) Path() string { return f.path }
