package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("term record is overwritten", func(t *testing.T) {
		repo := NewMemoryRepo()
		_, err := repo.GetLatestTerm(ctx)
		assert.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, repo.PutLatestTerm(ctx, TermRecord{LatestTermID: "A", LatestTermName: "Fall"}))
		require.NoError(t, repo.PutLatestTerm(ctx, TermRecord{LatestTermID: "B", LatestTermName: "Spring"}))

		rec, err := repo.GetLatestTerm(ctx)
		require.NoError(t, err)
		assert.Equal(t, "B", rec.LatestTermID)
		assert.Equal(t, "Spring", rec.LatestTermName)
	})

	t.Run("subjects are listed sorted and copied", func(t *testing.T) {
		repo := NewMemoryRepo()
		numbers := []string{"101"}
		require.NoError(t, repo.PutSubject(ctx, SubjectCatalog{Subject: "MATH", Numbers: []string{"200"}}))
		require.NoError(t, repo.PutSubject(ctx, SubjectCatalog{Subject: "CS", Numbers: numbers}))
		numbers[0] = "999"

		subjects, err := repo.ListSubjects(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"CS", "MATH"}, subjects)

		sc, err := repo.GetSubject(ctx, "CS")
		require.NoError(t, err)
		assert.Equal(t, []string{"101"}, sc.Numbers)
	})

	t.Run("injected write failure", func(t *testing.T) {
		repo := NewMemoryRepo()
		boom := errors.New("boom")
		repo.FailWrites("CS", boom)

		assert.ErrorIs(t, repo.PutSubject(ctx, SubjectCatalog{Subject: "CS"}), boom)
		_, err := repo.GetSubject(ctx, "CS")
		assert.ErrorIs(t, err, ErrNotFound)

		repo.FailWrites("CS", nil)
		assert.NoError(t, repo.PutSubject(ctx, SubjectCatalog{Subject: "CS"}))
		_, subjectWrites := repo.Writes()
		assert.Equal(t, 1, subjectWrites)
	})
}
