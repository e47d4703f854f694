package testhelpers

import (
	"time"

	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
	"github.com/stretchr/testify/require"
)

// Date parses a YYYY-MM-DD calendar date as UTC midnight.
func (h *TestHelper) Date(s string) time.Time {
	d, err := time.Parse(utils.DateLayout, s)
	require.NoError(h.T, err)
	return d
}
