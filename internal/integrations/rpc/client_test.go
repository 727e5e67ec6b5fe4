package rpc

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
)

type fakeCaller struct {
	name   string
	params interface{}
	body   string
}

func (f *fakeCaller) Rpc(name, _ string, rpcBody interface{}) string {
	f.name = name
	f.params = rpcBody
	return f.body
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestRespondToQuote(t *testing.T) {
	caller := &fakeCaller{body: `"SUCCESS: Quote accepted"`}
	client := NewClient(caller, nopLogger{})

	quoteID, customerID := uuid.New(), uuid.New()
	res, err := client.RespondToQuote(context.Background(), quoteID, customerID, domain.DecisionAccept, "")
	require.NoError(t, err)
	assert.True(t, res.Success)

	assert.Equal(t, procRespondToQuote, caller.name)
	params := caller.params.(map[string]interface{})
	assert.Equal(t, quoteID.String(), params["p_quote_id"])
	assert.Equal(t, customerID.String(), params["p_customer_id"])
	assert.Equal(t, "accept", params["p_decision"])
	assert.NotContains(t, params, "p_note")
}

func TestCallProcedureFailure(t *testing.T) {
	client := NewClient(&fakeCaller{body: `{"success": false, "error": "Edit request already processed"}`}, nopLogger{})

	res, err := client.RejectEditRequest(context.Background(), uuid.New(), uuid.New(), "too late")
	require.ErrorIs(t, err, ErrProcedureFailed)
	require.NotNil(t, res)
	assert.Equal(t, "Edit request already processed", res.Message)
}

func TestCallPlatformError(t *testing.T) {
	body := `{"code":"23505","message":"duplicate key value violates unique constraint \"quotes_booking_id_key\"","details":null}`
	client := NewClient(&fakeCaller{body: body}, nopLogger{})

	res, err := client.RespondToQuote(context.Background(), uuid.New(), uuid.New(), domain.DecisionAccept, "")
	require.ErrorIs(t, err, ErrPlatform)
	assert.NotErrorIs(t, err, ErrProcedureFailed)
	assert.NotErrorIs(t, err, ErrTransport)
	assert.Nil(t, res)
}

func TestCallTransportFailure(t *testing.T) {
	client := NewClient(&fakeCaller{body: ""}, nopLogger{})

	_, err := client.ApproveEditRequest(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrTransport)
}

func TestCallCanceledContext(t *testing.T) {
	caller := &fakeCaller{body: `"SUCCESS: ok"`}
	client := NewClient(caller, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ApproveEditRequest(ctx, uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrTransport)
	assert.Empty(t, caller.name)
}
