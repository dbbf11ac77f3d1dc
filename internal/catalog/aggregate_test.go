package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	t.Run("groups in encounter order and keeps duplicates", func(t *testing.T) {
		idx := Aggregate([]ClassRecord{
			{Subject: "CS", Number: "101"},
			{Subject: "MATH", Number: "200"},
			{Subject: "CS", Number: "102"},
			{Subject: "CS", Number: "101"},
		})

		assert.Equal(t, []string{"CS", "MATH"}, idx.Subjects)
		assert.Equal(t, map[string][]string{
			"CS":   {"101", "102", "101"},
			"MATH": {"200"},
		}, idx.Numbers)
	})

	t.Run("does not sort numbers", func(t *testing.T) {
		idx := Aggregate([]ClassRecord{
			{Subject: "PHYS", Number: "300"},
			{Subject: "PHYS", Number: "100"},
		})
		assert.Equal(t, []string{"300", "100"}, idx.Numbers["PHYS"])
	})

	t.Run("empty input", func(t *testing.T) {
		idx := Aggregate(nil)
		assert.Equal(t, 0, idx.Len())
		assert.Empty(t, idx.Catalogs())
	})
}

func TestIndex_Catalogs(t *testing.T) {
	idx := NewIndex()
	idx.Add("MATH", "200")
	idx.Add("CS", "101")

	assert.True(t, idx.Has("CS"))
	assert.False(t, idx.Has("HIST"))
	assert.Equal(t, []SubjectCatalog{
		{Subject: "MATH", Numbers: []string{"200"}},
		{Subject: "CS", Numbers: []string{"101"}},
	}, idx.Catalogs())
}

func TestKeyedRecords(t *testing.T) {
	kept, dropped := KeyedRecords([]ClassRecord{
		{Subject: "CS", Number: "101"},
		{Subject: "", Number: "999"},
		{Subject: "MATH", Number: "200"},
		{Subject: "", Number: "998"},
	})

	assert.Equal(t, 2, dropped)
	assert.Equal(t, []ClassRecord{
		{Subject: "CS", Number: "101"},
		{Subject: "MATH", Number: "200"},
	}, kept)
}
