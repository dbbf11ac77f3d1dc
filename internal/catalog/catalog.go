package catalog

import "time"

// Term is one academic term as published by the term directory.
type Term struct {
	ID   string
	Name string
}

// TermRecord is the single persisted pointer to the last-known latest term.
type TermRecord struct {
	LatestTermID   string    `json:"latestTermID" firestore:"latestTermID"`
	LatestTermName string    `json:"latestTermName" firestore:"latestTermName"`
	UpdatedAt      time.Time `json:"updatedAt,omitempty" firestore:"-"`
}

// ClassRecord is one row of the term catalog feed. Only the subject code and
// course number are kept.
type ClassRecord struct {
	Subject string `json:"u"`
	Number  string `json:"n"`
}

// SubjectCatalog is the persisted list of course numbers for one subject.
// Numbers keeps feed order and may contain duplicates.
type SubjectCatalog struct {
	Subject   string    `json:"subject" firestore:"-"`
	Numbers   []string  `json:"numbers" firestore:"numbers"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" firestore:"-"`
}
