package httpserver

import (
	"context"

	"github.com/signalhub/signalhub/internal/model"
)

type ctxKey string

const clientKey ctxKey = "signalhub.client"

// WithClient stores the authenticated client in context.
func WithClient(ctx context.Context, c *model.Client) context.Context {
	return context.WithValue(ctx, clientKey, c)
}

// ClientFromCtx fetches the authenticated client from context.
func ClientFromCtx(ctx context.Context) (*model.Client, bool) {
	v := ctx.Value(clientKey)
	if v == nil {
		return nil, false
	}
	c, ok := v.(*model.Client)
	return c, ok
}
