package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListQuery_Defaults(t *testing.T) {
	q := &ListQuery{}
	require.Equal(t, DefaultPageSize, q.Limit())
	require.Equal(t, 0, q.Offset())
	require.False(t, q.Desc())
}

func TestListQuery_PageToOffset(t *testing.T) {
	q := &ListQuery{Page: 2, PageSize: 10}
	require.Equal(t, 10, q.Offset())
	require.Equal(t, 10, q.Limit())

	q = &ListQuery{Page: 5, PageSize: 25}
	require.Equal(t, 100, q.Offset())
}

func TestListQuery_PageSizeCapped(t *testing.T) {
	q := &ListQuery{Page: 2, PageSize: 10000}
	require.Equal(t, MaxPageSize, q.Limit())
	require.Equal(t, MaxPageSize, q.Offset())
}

func TestListQuery_SortOrder(t *testing.T) {
	require.True(t, (&ListQuery{SortOrder: SortOrderDesc}).Desc())
	require.False(t, (&ListQuery{SortOrder: SortOrderAsc}).Desc())
	require.False(t, (&ListQuery{SortOrder: "sideways"}).Desc())
}
