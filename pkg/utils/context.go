package utils

import (
	"context"

	"trackhub/internal/authz"
	"trackhub/pkg/contextkeys"
)

// RequesterFromCtx returns the requester the gate stored for this
// request. The zero Requester means the request went through a public
// route without credentials.
func RequesterFromCtx(ctx context.Context) authz.Requester {
	requester, ok := ctx.Value(contextkeys.RequesterKey).(authz.Requester)
	if !ok {
		return authz.Requester{}
	}
	return requester
}
