package intakev1

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderTypeText(t *testing.T) {
	var request PlaceOrderRequest
	require.NoError(t, json.Unmarshal([]byte(`{"type":"TYPE_STOP_LOSS"}`), &request))
	assert.Equal(t, OrderType_TYPE_STOP_LOSS, request.GetType())

	require.NoError(t, json.Unmarshal([]byte(`{"type":"ICEBERG"}`), &request))
	assert.Equal(t, OrderType_TYPE_INVALID, request.GetType())
}

func TestOrderStatusKeepsUnknownNumbers(t *testing.T) {
	data, err := json.Marshal(&CancelOrderResponse{Status: OrderStatus(7)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"STATUS_7"}`, string(data))

	var response CancelOrderResponse
	require.NoError(t, json.Unmarshal(data, &response))
	assert.Equal(t, OrderStatus(7), response.GetStatus())

	assert.Error(t, json.Unmarshal([]byte(`{"status":"FILLED"}`), &response))
}

func TestNilGetters(t *testing.T) {
	var response *GetOrderStatusResponse

	assert.Nil(t, response.GetOrder())
	assert.Equal(t, "", response.GetOrder().GetID())
	assert.Equal(t, OrderStatus_STATUS_UNSPECIFIED, response.GetOrder().GetStatus())
}
