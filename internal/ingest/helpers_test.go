package ingest

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/stretchr/testify/mock"

	"coursecatalog/internal/catalog"
	"coursecatalog/internal/platform/paperdata"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockTermSource struct {
	mock.Mock
}

func (m *mockTermSource) GetTermDirectory(ctx context.Context) (*paperdata.TermDirectory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paperdata.TermDirectory), args.Error(1)
}

type mockCatalogSource struct {
	mock.Mock
}

func (m *mockCatalogSource) GetClassRecords(ctx context.Context, termID string) ([]catalog.ClassRecord, error) {
	args := m.Called(ctx, termID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.ClassRecord), args.Error(1)
}

type mockRunRepo struct {
	mock.Mock
}

func (m *mockRunRepo) CreateRun(ctx context.Context, run *Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *mockRunRepo) UpdateRun(ctx context.Context, run *Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func directory(latest string, names map[string]string) *paperdata.TermDirectory {
	dir := &paperdata.TermDirectory{Latest: latest, Terms: map[string]paperdata.TermInfo{}}
	for id, name := range names {
		dir.Terms[id] = paperdata.TermInfo{Name: name}
	}
	return dir
}

// hookStore wraps a MemoryRepo and lets tests intercept writes.
type hookStore struct {
	*catalog.MemoryRepo

	mu            sync.Mutex
	putTerm       func(catalog.TermRecord) error
	putSubject    func(catalog.SubjectCatalog) error
	listErr       error
	replaceAllErr error
	replaced      *catalog.Index
}

func newHookStore() *hookStore {
	return &hookStore{MemoryRepo: catalog.NewMemoryRepo()}
}

func (s *hookStore) PutLatestTerm(ctx context.Context, rec catalog.TermRecord) error {
	if s.putTerm != nil {
		if err := s.putTerm(rec); err != nil {
			return err
		}
	}
	return s.MemoryRepo.PutLatestTerm(ctx, rec)
}

func (s *hookStore) ListSubjects(ctx context.Context) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.MemoryRepo.ListSubjects(ctx)
}

func (s *hookStore) PutSubject(ctx context.Context, sc catalog.SubjectCatalog) error {
	if s.putSubject != nil {
		if err := s.putSubject(sc); err != nil {
			return err
		}
	}
	return s.MemoryRepo.PutSubject(ctx, sc)
}

// atomicStore adds ReplaceAll to hookStore.
type atomicStore struct {
	*hookStore
}

func (s atomicStore) ReplaceAll(_ context.Context, idx *catalog.Index) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaced = idx
	return s.replaceAllErr
}

func seedSubject(s catalog.Store, subject string, numbers ...string) {
	_ = s.PutSubject(context.Background(), catalog.SubjectCatalog{Subject: subject, Numbers: numbers})
}

func storedNumbers(s catalog.Store, subject string) ([]string, error) {
	sc, err := s.GetSubject(context.Background(), subject)
	return sc.Numbers, err
}
