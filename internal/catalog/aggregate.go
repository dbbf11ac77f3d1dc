package catalog

// Index groups course numbers by subject. Subjects keeps first-encounter
// order so callers can iterate deterministically.
type Index struct {
	Subjects []string
	Numbers  map[string][]string
}

func NewIndex() *Index {
	return &Index{Numbers: make(map[string][]string)}
}

// Add appends number to subject, registering the subject on first use.
func (idx *Index) Add(subject, number string) {
	if _, ok := idx.Numbers[subject]; !ok {
		idx.Subjects = append(idx.Subjects, subject)
	}
	idx.Numbers[subject] = append(idx.Numbers[subject], number)
}

// Has reports whether subject appeared in the aggregated records.
func (idx *Index) Has(subject string) bool {
	_, ok := idx.Numbers[subject]
	return ok
}

func (idx *Index) Len() int {
	return len(idx.Subjects)
}

// Catalogs returns one SubjectCatalog per subject in index order.
func (idx *Index) Catalogs() []SubjectCatalog {
	out := make([]SubjectCatalog, 0, len(idx.Subjects))
	for _, subject := range idx.Subjects {
		out = append(out, SubjectCatalog{Subject: subject, Numbers: idx.Numbers[subject]})
	}
	return out
}

// Aggregate groups records by subject. Numbers are neither sorted nor
// deduplicated; a subject listed twice with the same number keeps both.
func Aggregate(records []ClassRecord) *Index {
	idx := NewIndex()
	for _, rec := range records {
		idx.Add(rec.Subject, rec.Number)
	}
	return idx
}

// KeyedRecords returns the records that carry a subject code, in order, and
// how many were dropped. A record without a subject has no document to go to.
func KeyedRecords(records []ClassRecord) (kept []ClassRecord, dropped int) {
	kept = make([]ClassRecord, 0, len(records))
	for _, rec := range records {
		if rec.Subject == "" {
			dropped++
			continue
		}
		kept = append(kept, rec)
	}
	return kept, dropped
}
