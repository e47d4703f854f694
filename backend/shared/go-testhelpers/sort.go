package testhelpers

import (
	"sort"

	"github.com/jackc/pgx/v4"
)

var errNoRows = pgx.ErrNoRows

func sortBy[T any](items []T, key func(T) int64, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return key(items[i]) > key(items[j])
		}
		return key(items[i]) < key(items[j])
	})
}
