package httpx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginateCollectsAllPages(t *testing.T) {
	pages := map[string][]int{
		"":  {1, 2},
		"2": {3, 4},
		"4": {5},
	}
	next := map[string]string{"": "2", "2": "4", "4": ""}

	fetch := func(cursor string) ([]int, string, error) {
		return pages[cursor], next[cursor], nil
	}

	var got []int
	for v, err := range Paginate(fetch) {
		require.NoError(t, err)
		got = append(got, v)
	}

	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
}

func TestPaginateStopsOnRepeatedCursor(t *testing.T) {
	fetch := func(cursor string) ([]int, string, error) {
		return []int{1}, "same", nil
	}

	var got []int
	var lastErr error
	for v, err := range Paginate(fetch) {
		if err != nil {
			lastErr = err
			break
		}
		got = append(got, v)
	}

	require.Error(t, lastErr)
	assert.Contains(t, lastErr.Error(), "same")
	// First page yields once before the repeat is detected on the second fetch.
	assert.Equal(t, []int{1}, got)
}

func TestPaginatePropagatesFetchError(t *testing.T) {
	boom := errors.New("boom")
	fetch := func(cursor string) ([]int, string, error) {
		return nil, "", boom
	}

	var sawErr error
	for _, err := range Paginate(fetch) {
		sawErr = err
	}

	require.ErrorIs(t, sawErr, boom)
}

func TestPaginateStopsEarlyWhenCallerBreaks(t *testing.T) {
	calls := 0
	fetch := func(cursor string) ([]int, string, error) {
		calls++
		return []int{1, 2, 3}, "next", nil
	}

	var got []int
	for v, err := range Paginate(fetch) {
		require.NoError(t, err)
		got = append(got, v)
		if len(got) == 2 {
			break
		}
	}

	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 1, calls)
}
