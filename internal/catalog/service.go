package catalog

import (
	"context"
)

// Service exposes read-only views of the synced catalog.
type Service struct {
	repo Store
}

func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

func (s *Service) LatestTerm(ctx context.Context) (TermRecord, error) {
	return s.repo.GetLatestTerm(ctx)
}

func (s *Service) Subjects(ctx context.Context) ([]string, error) {
	return s.repo.ListSubjects(ctx)
}

func (s *Service) Subject(ctx context.Context, subject string) (SubjectCatalog, error) {
	return s.repo.GetSubject(ctx, subject)
}
