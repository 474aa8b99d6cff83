package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "mentor_id").
		From("availability_slots").
		Where(squirrel.Eq{"mentor_id": "m-1"}).
		Where(squirrel.Eq{"is_active": true}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, mentor_id FROM availability_slots WHERE mentor_id = $1 AND is_active = $2", query)
	assert.Equal(t, []interface{}{"m-1", true}, args)
}

func TestUpdate_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Update("sessions").
		Set("status", "expired").
		Where(squirrel.Eq{"id": 7}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE sessions SET status = $1 WHERE id = $2", query)
	assert.Len(t, args, 2)
}
