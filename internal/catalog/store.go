package catalog

import "context"

// Document paths shared by every store implementation.
const (
	TermCollection       = "majorsCourses"
	TermDocID            = "latestTerm"
	CourseDataCollection = "courseData"

	LatestTermDoc = TermCollection + "/" + TermDocID
)

// CourseDataDoc is the document path of a subject catalog.
func CourseDataDoc(subject string) string {
	return CourseDataCollection + "/" + subject
}

// Store is the document store the sync job reads and writes. Each call
// touches a single document; implementations guarantee per-document
// consistency only.
type Store interface {
	// GetLatestTerm returns ErrNotFound when no term has been stored yet.
	GetLatestTerm(ctx context.Context) (TermRecord, error)
	// PutLatestTerm creates or overwrites the term record.
	PutLatestTerm(ctx context.Context, rec TermRecord) error
	ListSubjects(ctx context.Context) ([]string, error)
	GetSubject(ctx context.Context, subject string) (SubjectCatalog, error)
	// PutSubject creates or overwrites the subject's numbers.
	PutSubject(ctx context.Context, sc SubjectCatalog) error
}

// AtomicReplacer is implemented by stores that can swap the whole
// courseData set in one transaction: every stored subject absent from idx
// is emptied and every subject in idx is overwritten, or nothing changes.
type AtomicReplacer interface {
	ReplaceAll(ctx context.Context, idx *Index) error
}
