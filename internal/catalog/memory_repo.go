package catalog

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"
)

// MemoryRepo is an in-process Store used for dry runs and tests.
type MemoryRepo struct {
	mu       sync.RWMutex
	term     *TermRecord
	subjects map[string]SubjectCatalog

	failWrites map[string]error
	termWrites int
	subjWrites int
}

var _ Store = (*MemoryRepo)(nil)

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		subjects:   make(map[string]SubjectCatalog),
		failWrites: make(map[string]error),
	}
}

// FailWrites makes every PutSubject for subject return err. A nil err
// clears the injected failure.
func (r *MemoryRepo) FailWrites(subject string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil {
		delete(r.failWrites, subject)
		return
	}
	r.failWrites[subject] = err
}

// Writes returns how many term and subject writes succeeded.
func (r *MemoryRepo) Writes() (term, subjects int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.termWrites, r.subjWrites
}

func (r *MemoryRepo) GetLatestTerm(_ context.Context) (TermRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.term == nil {
		return TermRecord{}, ErrNotFound
	}
	return *r.term, nil
}

func (r *MemoryRepo) PutLatestTerm(ctx context.Context, rec TermRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.UpdatedAt = time.Now()
	r.term = &rec
	r.termWrites++
	return nil
}

func (r *MemoryRepo) ListSubjects(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	subjects := make([]string, 0, len(r.subjects))
	for s := range r.subjects {
		subjects = append(subjects, s)
	}
	slices.Sort(subjects)
	return subjects, nil
}

func (r *MemoryRepo) GetSubject(_ context.Context, subject string) (SubjectCatalog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sc, ok := r.subjects[subject]
	if !ok {
		return SubjectCatalog{}, ErrNotFound
	}
	sc.Numbers = slices.Clone(sc.Numbers)
	return sc, nil
}

func (r *MemoryRepo) PutSubject(ctx context.Context, sc SubjectCatalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if sc.Subject == "" {
		return errors.New("put subject: empty subject")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failWrites[sc.Subject]; err != nil {
		return err
	}
	sc.Numbers = append([]string{}, sc.Numbers...)
	sc.UpdatedAt = time.Now()
	r.subjects[sc.Subject] = sc
	r.subjWrites++
	return nil
}
