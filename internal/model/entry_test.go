package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func sampleEntries() []*Entry {
	return []*Entry{
		{ID: 3, Category: "철골공사", ItemType: ItemTypeQuotation, ReviewText: "구조도면 누락 여부 확인", AuthorName: ptr("이길재")},
		{ID: 2, Category: "토공사", ItemType: ItemTypeContract, ReviewText: "단가 기준 재검토", AuthorName: ptr("김판수"), Note: ptr("2차 견적")},
		{ID: 1, Category: "금속공사", ItemType: ItemTypeNotice, ReviewText: "Handrail spec 공유"},
	}
}

func TestFilterEntries_EmptyQueryAllTypes(t *testing.T) {
	entries := sampleEntries()

	out := FilterEntries(entries, "", TypeFilterAll)

	require.Len(t, out, 3)
	assert.Equal(t, int64(3), out[0].ID, "input order must be preserved")
	assert.Equal(t, int64(1), out[2].ID)
}

func TestFilterEntries_TypeFilter(t *testing.T) {
	out := FilterEntries(sampleEntries(), "", ItemTypeQuotation)

	require.Len(t, out, 1)
	assert.Equal(t, "철골공사", out[0].Category)
}

func TestFilterEntries_QueryMatchesAnyField(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{"category", "철골", []int64{3}},
		{"review text", "도면", []int64{3}},
		{"author", "이길재", []int64{3}},
		{"note", "견적", []int64{3, 2}},
		{"case-insensitive latin", "HANDRAIL", []int64{1}},
		{"no match", "없는검색어", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := FilterEntries(sampleEntries(), tt.query, TypeFilterAll)

			got := make([]int64, 0, len(out))
			for _, e := range out {
				got = append(got, e.ID)
			}
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterEntries_QueryAndTypeCombine(t *testing.T) {
	// 견적 matches the quotation entry's type string and the contract
	// entry's note, but the type filter keeps only the contract row.
	out := FilterEntries(sampleEntries(), "견적", ItemTypeContract)

	require.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].ID)
}

func TestFilterEntries_WhitespaceQueryMatchesAll(t *testing.T) {
	out := FilterEntries(sampleEntries(), "   ", "")

	assert.Len(t, out, 3)
}

func TestValidItemType(t *testing.T) {
	for _, it := range ItemTypes {
		assert.True(t, ValidItemType(it), it)
	}
	assert.False(t, ValidItemType("전체"), "the filter-all sentinel is not a storable type")
	assert.False(t, ValidItemType(""))
}

func TestAttachmentListRoundTrip(t *testing.T) {
	list := AttachmentList{
		{Name: "도면.pdf", Key: "team/1-abc-_.pdf", Size: 1024},
		{Name: "b.xlsx", Key: "team/2-def-b.xlsx"},
	}

	v, err := list.Value()
	require.NoError(t, err)

	var decoded AttachmentList
	require.NoError(t, decoded.Scan(v))
	assert.Equal(t, list, decoded)
}

func TestAttachmentListValueNil(t *testing.T) {
	var list AttachmentList

	v, err := list.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v, "nil list must store as an empty JSON array")
}

func TestAttachmentListKeys(t *testing.T) {
	list := AttachmentList{{Key: "a"}, {Key: "b"}}

	assert.Equal(t, []string{"a", "b"}, list.Keys())
	assert.Empty(t, AttachmentList(nil).Keys())
}
