package session

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveBySlotInRangeQuery(t *testing.T) {
	slotID := uuid.MustParse("11111111-2222-4333-8444-555555555555")
	from := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 8, 9, 30, 0, 0, time.UTC)

	t.Run("outside transaction", func(t *testing.T) {
		query, args, err := activeBySlotInRangeQuery(slotID, from, to, false)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(query, "SELECT "+strings.Join(columns, ", ")+" FROM sessions WHERE "))
		assert.Contains(t, query,
			"availability_slot_id = $1 AND status IN ($2,$3) AND start_time < $4 AND end_time > $5")
		assert.True(t, strings.HasSuffix(query, "ORDER BY start_time ASC"))
		assert.Equal(t, []interface{}{slotID.String(), "pending", "confirmed", to, from}, args)
	})

	t.Run("inside transaction locks rows", func(t *testing.T) {
		query, _, err := activeBySlotInRangeQuery(slotID, from, to, true)
		require.NoError(t, err)

		assert.True(t, strings.HasSuffix(query, "ORDER BY start_time ASC FOR UPDATE"))
	})
}
