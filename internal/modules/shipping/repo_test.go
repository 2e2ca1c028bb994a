package shipping

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewForOrder(t *testing.T) {
	s := newForOrder("ord-1", "store-1")

	assert.Equal(t, "ord-1", s.OrderID)
	assert.Equal(t, "store-1", s.StoreID)
	assert.Equal(t, StatusReadyToPick, s.Status)
	assert.NotEmpty(t, s.ID)

	var history []json.RawMessage
	require.NoError(t, json.Unmarshal(s.History, &history))
	assert.Empty(t, history)
}

func TestIsDup(t *testing.T) {
	assert.True(t, isDup(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}))
	assert.False(t, isDup(&mysql.MySQLError{Number: 1213}))
	assert.False(t, isDup(errors.New("broken pipe")))
	assert.False(t, isDup(nil))
}
