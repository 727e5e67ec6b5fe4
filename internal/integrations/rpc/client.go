package rpc

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	supa "github.com/supabase-community/supabase-go"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
)

const (
	procRespondToQuote     = "respond_to_quote"
	procApproveEditRequest = "approve_edit_request"
	procRejectEditRequest  = "reject_edit_request"
)

// NewSupabaseCaller создает клиент платформы для вызова хранимых процедур
func NewSupabaseCaller(url, serviceKey, schema string) (*supa.Client, error) {
	client, err := supa.NewClient(url, serviceKey, &supa.ClientOptions{Schema: schema})
	if err != nil {
		return nil, fmt.Errorf("%w: create platform client: %v", ErrTransport, err)
	}
	return client, nil
}

// Client типизированный адаптер хранимых процедур
type Client struct {
	caller Caller
	log    Logger
}

// NewClient создает новый экземпляр адаптера
func NewClient(caller Caller, log Logger) *Client {
	return &Client{
		caller: caller,
		log:    log,
	}
}

// Call вызывает процедуру и разбирает ответ.
// Если процедура вернула ошибку, возвращается Result вместе с ErrProcedureFailed.
// Ошибка платформы возвращается как ErrPlatform без Result.
func (c *Client) Call(ctx context.Context, name string, params map[string]interface{}) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTransport, name, err)
	}

	body := c.caller.Rpc(name, "", params)
	if body == "" {
		c.log.Error("RPC %s: empty response from platform", name)
		return nil, fmt.Errorf("%w: %s: empty response", ErrTransport, name)
	}

	res, err := ParseResult(body)
	if err != nil {
		if errors.Is(err, ErrPlatform) {
			c.log.Error("RPC %s: platform error, body=%s", name, body)
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		c.log.Error("RPC %s: unparseable response: %v", name, err)
		return nil, err
	}

	if !res.Success {
		c.log.Warn("RPC %s: procedure failed: %s", name, res.Message)
		return res, fmt.Errorf("%w: %s: %s", ErrProcedureFailed, name, res.Message)
	}

	c.log.Info("RPC %s: success", name)
	return res, nil
}

// RespondToQuote принимает или отклоняет квоту от имени клиента
func (c *Client) RespondToQuote(ctx context.Context, quoteID, customerID uuid.UUID, decision domain.QuoteDecision, note string) (*Result, error) {
	params := map[string]interface{}{
		"p_quote_id":    quoteID.String(),
		"p_customer_id": customerID.String(),
		"p_decision":    string(decision),
	}
	if note != "" {
		params["p_note"] = note
	}
	return c.Call(ctx, procRespondToQuote, params)
}

// ApproveEditRequest одобряет запрос на изменение бронирования
func (c *Client) ApproveEditRequest(ctx context.Context, requestID, actorID uuid.UUID) (*Result, error) {
	return c.Call(ctx, procApproveEditRequest, map[string]interface{}{
		"p_request_id": requestID.String(),
		"p_actor_id":   actorID.String(),
	})
}

// RejectEditRequest отклоняет запрос на изменение бронирования
func (c *Client) RejectEditRequest(ctx context.Context, requestID, actorID uuid.UUID, reason string) (*Result, error) {
	params := map[string]interface{}{
		"p_request_id": requestID.String(),
		"p_actor_id":   actorID.String(),
	}
	if reason != "" {
		params["p_reason"] = reason
	}
	return c.Call(ctx, procRejectEditRequest, params)
}
