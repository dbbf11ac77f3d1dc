package catalog

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreRepo stores the catalog in the majorsCourses and courseData
// collections, one document per subject.
type FirestoreRepo struct {
	client *firestore.Client
}

var _ Store = (*FirestoreRepo)(nil)

// NewFirestoreClient opens a client for projectID. An empty credentialsFile
// falls back to application default credentials.
func NewFirestoreClient(ctx context.Context, projectID, credentialsFile string) (*firestore.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("open firestore client: %w", err)
	}
	return client, nil
}

func NewFirestoreRepo(client *firestore.Client) *FirestoreRepo {
	return &FirestoreRepo{client: client}
}

func (r *FirestoreRepo) termDoc() *firestore.DocumentRef {
	return r.client.Collection(TermCollection).Doc(TermDocID)
}

func (r *FirestoreRepo) GetLatestTerm(ctx context.Context) (TermRecord, error) {
	snap, err := r.termDoc().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return TermRecord{}, ErrNotFound
		}
		return TermRecord{}, fmt.Errorf("get latest term: %w", err)
	}

	var rec TermRecord
	if err := snap.DataTo(&rec); err != nil {
		return TermRecord{}, fmt.Errorf("decode latest term: %w", err)
	}
	rec.UpdatedAt = snap.UpdateTime
	return rec, nil
}

func (r *FirestoreRepo) PutLatestTerm(ctx context.Context, rec TermRecord) error {
	if _, err := r.termDoc().Set(ctx, rec); err != nil {
		return fmt.Errorf("put latest term: %w", err)
	}
	return nil
}

func (r *FirestoreRepo) ListSubjects(ctx context.Context) ([]string, error) {
	iter := r.client.Collection(CourseDataCollection).Select().Documents(ctx)
	defer iter.Stop()

	var subjects []string
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list subjects: %w", err)
		}
		subjects = append(subjects, snap.Ref.ID)
	}
	return subjects, nil
}

func (r *FirestoreRepo) GetSubject(ctx context.Context, subject string) (SubjectCatalog, error) {
	snap, err := r.client.Collection(CourseDataCollection).Doc(subject).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return SubjectCatalog{}, ErrNotFound
		}
		return SubjectCatalog{}, fmt.Errorf("get subject %s: %w", subject, err)
	}

	var sc SubjectCatalog
	if err := snap.DataTo(&sc); err != nil {
		return SubjectCatalog{}, fmt.Errorf("decode subject %s: %w", subject, err)
	}
	sc.Subject = subject
	sc.UpdatedAt = snap.UpdateTime
	if sc.Numbers == nil {
		sc.Numbers = []string{}
	}
	return sc, nil
}

func (r *FirestoreRepo) PutSubject(ctx context.Context, sc SubjectCatalog) error {
	sc.Numbers = nonNil(sc.Numbers)
	if _, err := r.client.Collection(CourseDataCollection).Doc(sc.Subject).Set(ctx, sc); err != nil {
		return fmt.Errorf("put subject %s: %w", sc.Subject, err)
	}
	return nil
}
