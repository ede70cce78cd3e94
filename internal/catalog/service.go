package catalog

import (
	"context"
	"fmt"
	"io"
	"iter"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/CoursePlanner/internal/avl"
	"github.com/JonMunkholm/CoursePlanner/internal/config"
	"github.com/JonMunkholm/CoursePlanner/internal/logging"
)

// LoadResult describes a successful catalog load.
type LoadResult struct {
	ID       uuid.UUID     `json:"load_id"`
	Source   string        `json:"source"`
	Courses  int           `json:"courses"`
	Height   int           `json:"height"`
	LoadedAt time.Time     `json:"loaded_at"`
	Duration time.Duration `json:"-"`
}

// Detail is a course together with its prerequisites resolved against the
// current index. Missing lists prerequisites that have no entry, which can
// only happen after Insert added a course referring to unknown courses.
type Detail struct {
	Entry
	Prerequisites []Entry
	Missing       []string
}

// Service holds the live catalog index.
//
// Lookups run under a shared lock. Insert and the final swap of Load take
// the exclusive lock; the parse, validation and tree build of Load happen
// before the lock is taken, so readers keep seeing the previous catalog
// until the new one is complete.
type Service struct {
	cfg     config.CatalogConfig
	limiter *LoadLimiter

	mu    sync.RWMutex
	index *Index
	last  LoadResult
}

// NewService returns a Service with an empty catalog.
func NewService(cfg config.CatalogConfig) *Service {
	return &Service{
		cfg:     cfg,
		limiter: NewLoadLimiter(cfg.MaxConcurrentLoads, cfg.LoadWait),
		index:   avl.New[Course](),
	}
}

// Load reads src, validates it and replaces the current catalog. On error
// the current catalog is left untouched.
func (s *Service) Load(ctx context.Context, src Source) (LoadResult, error) {
	id := uuid.New()
	logger := logging.WithFields(ctx, "load_id", id.String(), "source", src.Name())

	if err := s.limiter.Acquire(ctx); err != nil {
		logger.Warn("catalog load rejected", "error", err)
		return LoadResult{}, err
	}
	defer s.limiter.Release()

	start := time.Now()

	rows, err := src.Rows(ctx)
	if err != nil {
		logger.Warn("catalog read failed", "error", err, "code", MapError(err).Code)
		return LoadResult{}, fmt.Errorf("load %s: %w", src.Name(), err)
	}

	courses, err := Load(rows)
	if err != nil {
		logger.Warn("catalog validation failed", "rows", len(rows), "error", err, "code", MapError(err).Code)
		return LoadResult{}, fmt.Errorf("load %s: %w", src.Name(), err)
	}

	idx := BuildIndex(courses)

	result := LoadResult{
		ID:       id,
		Source:   src.Name(),
		Courses:  idx.Len(),
		Height:   idx.Height(),
		LoadedAt: time.Now(),
		Duration: time.Since(start),
	}

	s.mu.Lock()
	s.index = idx
	s.last = result
	s.mu.Unlock()

	logger.Info("catalog loaded",
		"rows", len(rows),
		"courses", result.Courses,
		"height", result.Height,
		"duration_ms", result.Duration.Milliseconds(),
	)

	return result, nil
}

// LoadFile loads a CSV catalog from path, honoring the configured size cap.
func (s *Service) LoadFile(ctx context.Context, path string) (LoadResult, error) {
	return s.Load(ctx, FileSource{Path: path, MaxSize: s.cfg.MaxFileSize})
}

// LoadReader loads a CSV catalog from r, honoring the configured size cap.
func (s *Service) LoadReader(ctx context.Context, label string, r io.Reader) (LoadResult, error) {
	return s.Load(ctx, ReaderSource{Label: label, Reader: r, MaxSize: s.cfg.MaxFileSize})
}

// Insert adds or replaces a single course. The identifier is normalized.
func (s *Service) Insert(id string, c Course) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index.Insert(NormalizeID(id), c)
	s.last.Courses = s.index.Len()
	s.last.Height = s.index.Height()
}

// Course looks up a course by identifier, normalizing it first.
func (s *Service) Course(id string) (Course, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Search(NormalizeID(id))
}

// Detail looks up a course and resolves its prerequisites.
func (s *Service) Detail(id string) (Detail, bool) {
	key := NormalizeID(id)

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.index.Search(key)
	if !ok {
		return Detail{}, false
	}

	d := Detail{Entry: Entry{ID: key, Course: c}}
	for _, p := range c.prereqs {
		if pc, ok := s.index.Search(p); ok {
			d.Prerequisites = append(d.Prerequisites, Entry{ID: p, Course: pc})
		} else {
			d.Missing = append(d.Missing, p)
		}
	}
	return d, true
}

// All iterates the catalog in ascending identifier order while holding the
// read lock. The loop body must not call Load or Insert.
func (s *Service) All() iter.Seq2[string, Course] {
	return func(yield func(string, Course) bool) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		for id, c := range s.index.All() {
			if !yield(id, c) {
				return
			}
		}
	}
}

// Entries returns the catalog as a sorted slice.
func (s *Service) Entries() []Entry {
	entries := make([]Entry, 0, s.Len())
	for id, c := range s.All() {
		entries = append(entries, Entry{ID: id, Course: c})
	}
	return entries
}

// Len returns the number of courses in the catalog.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Len()
}

// LastLoad returns the result of the most recent successful load. The
// boolean is false until a load has succeeded.
func (s *Service) LastLoad() (LoadResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.last.ID != uuid.Nil
}

// DumpStructure writes the sideways height-annotated dump of the index.
func (s *Service) DumpStructure(w io.Writer) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.index.Dump(w)
}

// RenderStructure returns the index drawn as an ASCII tree.
func (s *Service) RenderStructure() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Render()
}

// Verify checks the index invariants.
func (s *Service) Verify() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Verify()
}

// LimiterStatus reports load slot usage.
func (s *Service) LimiterStatus() LoadLimiterStatus {
	return s.limiter.Status()
}

// WaitForLoads blocks until in-flight loads finish or ctx is done.
func (s *Service) WaitForLoads(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
