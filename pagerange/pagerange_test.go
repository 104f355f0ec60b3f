package pagerange

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pr(start, end int) PageRange { return PageRange{start: start, end: end} }

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		total int
		want  []PageRange
	}{
		{name: "mixed ranges and pages", expr: "1-3,5-8,10", total: 10, want: []PageRange{pr(0, 3), pr(4, 8), pr(9, 10)}},
		{name: "whitespace is ignored", expr: " 1 - 3 ,\t5-8 , 10 ", total: 10, want: []PageRange{pr(0, 3), pr(4, 8), pr(9, 10)}},
		{name: "single page", expr: "7", total: 10, want: []PageRange{pr(6, 7)}},
		{name: "degenerate range", expr: "7-7", total: 10, want: []PageRange{pr(6, 7)}},
		{name: "duplicates preserved in order", expr: "4,1-2,4", total: 5, want: []PageRange{pr(3, 4), pr(0, 2), pr(3, 4)}},
		{name: "empty tokens skipped", expr: ",2,,3,", total: 3, want: []PageRange{pr(1, 2), pr(2, 3)}},
		{name: "whole document", expr: "1-10", total: 10, want: []PageRange{pr(0, 10)}},
		{name: "leading zeros", expr: "03", total: 5, want: []PageRange{pr(2, 3)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.expr, tt.total)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		expr      string
		total     int
		wantToken string
	}{
		{name: "past last page", expr: "11", total: 10, wantToken: "11"},
		{name: "reversed range", expr: "5-3", total: 10, wantToken: "5-3"},
		{name: "empty", expr: "", total: 10, wantToken: ""},
		{name: "only separators", expr: " , ,", total: 10, wantToken: ",,"},
		{name: "page zero", expr: "0", total: 10, wantToken: "0"},
		{name: "range starting at zero", expr: "0-2", total: 10, wantToken: "0-2"},
		{name: "range past end", expr: "8-12", total: 10, wantToken: "8-12"},
		{name: "not a number", expr: "1,abc", total: 10, wantToken: "abc"},
		{name: "too many dashes", expr: "1-2-3", total: 10, wantToken: "1-2-3"},
		{name: "open ended range", expr: "3-", total: 10, wantToken: "3-"},
		{name: "leading dash", expr: "-3", total: 10, wantToken: "-3"},
		{name: "signed page", expr: "+2", total: 10, wantToken: "+2"},
		{name: "bad token after good ones", expr: "1-2,4,x-5", total: 10, wantToken: "x-5"},
		{name: "empty document", expr: "1", total: 0, wantToken: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.expr, tt.total)
			require.Error(t, err)
			assert.Nil(t, got, "no partial result on failure")

			var rangeErr *InvalidRangeError
			require.True(t, errors.As(err, &rangeErr))
			assert.Equal(t, tt.wantToken, rangeErr.Token)
		})
	}
}

func TestParse_RangesStayInsideDocument(t *testing.T) {
	exprs := []string{"1", "1-10", "2-9,3,10", "5,5,5", "1-1,10-10"}
	for _, expr := range exprs {
		ranges, err := Parse(expr, 10)
		require.NoError(t, err, expr)
		for _, r := range ranges {
			assert.GreaterOrEqual(t, r.Start(), 0)
			assert.Less(t, r.Start(), r.End())
			assert.LessOrEqual(t, r.End(), 10)
		}
		for _, p := range Union(ranges) {
			assert.True(t, p >= 1 && p <= 10, "page %d outside document", p)
		}
	}
}

func TestParse_SinglePageEqualsRange(t *testing.T) {
	single, err := Parse("7", 10)
	require.NoError(t, err)
	ranged, err := Parse("7-7", 10)
	require.NoError(t, err)
	assert.Equal(t, ranged, single)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "7", pr(6, 7).Label())
	assert.Equal(t, "1-3", pr(0, 3).Label())
	assert.Equal(t, "5-8", pr(4, 8).String())
}

func TestPageRangeAccessors(t *testing.T) {
	r := pr(4, 8)
	assert.Equal(t, 4, r.Start())
	assert.Equal(t, 8, r.End())
	assert.Equal(t, 4, r.Len())
	assert.Equal(t, []int{5, 6, 7, 8}, r.Pages())
	assert.True(t, r.Contains(4))
	assert.True(t, r.Contains(7))
	assert.False(t, r.Contains(8))
	assert.False(t, r.Contains(3))
}

func TestNewAndFull(t *testing.T) {
	r, err := New(2, 5, 5)
	require.NoError(t, err)
	assert.Equal(t, pr(2, 5), r)

	full, err := Full(12)
	require.NoError(t, err)
	assert.Equal(t, 0, full.Start())
	assert.Equal(t, 12, full.End())

	for _, bad := range [][2]int{{-1, 2}, {3, 3}, {4, 2}, {0, 6}} {
		_, err := New(bad[0], bad[1], 5)
		assert.Error(t, err, "New(%d, %d)", bad[0], bad[1])
	}

	_, err = Full(0)
	var rangeErr *InvalidRangeError
	assert.ErrorAs(t, err, &rangeErr)
}

func TestInsertionPoint(t *testing.T) {
	after, err := ParseInsertionPoint(" 3 ", 5)
	require.NoError(t, err)
	assert.Equal(t, 3, after)

	after, err = ParseInsertionPoint("5", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, after)

	for _, raw := range []string{"0", "6", "", "two", "-1"} {
		_, err := ParseInsertionPoint(raw, 5)
		var rangeErr *InvalidRangeError
		assert.ErrorAs(t, err, &rangeErr, "raw %q", raw)
	}

	assert.NoError(t, ValidateInsertionPoint(1, 1))
	assert.Error(t, ValidateInsertionPoint(2, 1))
}

func TestSelectorsAndUnion(t *testing.T) {
	ranges := []PageRange{pr(4, 8), pr(0, 1), pr(5, 6)}
	assert.Equal(t, []string{"5-8", "1", "6"}, Selectors(ranges))
	assert.Equal(t, []int{1, 5, 6, 7, 8}, Union(ranges))
	assert.Empty(t, Union(nil))
}

func TestInvalidRangeError_Message(t *testing.T) {
	_, err := Parse("11", 10)
	require.Error(t, err)
	assert.Equal(t, `invalid page range "11": pages must be between 1 and 10`, err.Error())

	_, err = Parse("", 10)
	require.Error(t, err)
	assert.Equal(t, "invalid page range: no page ranges given", err.Error())
}
