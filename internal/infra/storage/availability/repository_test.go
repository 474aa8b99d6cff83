package availability

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveInRangeQuery(t *testing.T) {
	mentorID := uuid.MustParse("0b9f6a2e-6a57-4f55-8f0a-7e1c3b2d4a11")
	msk := time.FixedZone("MSK", 3*60*60)
	from := time.Date(2024, 1, 8, 3, 0, 0, 0, msk)
	to := time.Date(2024, 1, 15, 3, 0, 0, 0, msk)

	query, args, err := activeInRangeQuery(mentorID, from, to)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "SELECT "+strings.Join(columns, ", ")+" FROM availability_slots WHERE "))
	assert.Contains(t, query, "is_active = $1 AND mentor_id = $2 AND start_time < $3")
	assert.Contains(t, query,
		"((is_recurring = $4 AND end_time > $5) OR "+
			"(is_recurring = $6 AND (recurring_end_date IS NULL OR recurring_end_date >= $7)))")
	assert.True(t, strings.HasSuffix(query, "ORDER BY start_time ASC, id ASC"))

	// границы уходят в UTC
	assert.Equal(t, []interface{}{
		true,
		mentorID.String(),
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		false,
		time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		true,
		time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
	}, args)
}
