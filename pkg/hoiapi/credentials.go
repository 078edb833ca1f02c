package hoiapi

import (
	"context"
	"net/http"
)

type credentialsKey struct{}

type credentials struct {
	cookies       []*http.Cookie
	correlationID string
}

// WithSession attaches the browser's upstream session cookies and the request's
// correlation id to ctx. Every call made with the returned context carries them.
func WithSession(ctx context.Context, cookies []*http.Cookie, correlationID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, credentialsKey{}, credentials{cookies: cookies, correlationID: correlationID})
}

func applyCredentials(ctx context.Context, req *http.Request) {
	creds, ok := ctx.Value(credentialsKey{}).(credentials)
	if !ok {
		return
	}
	for _, cookie := range creds.cookies {
		req.AddCookie(cookie)
	}
	if creds.correlationID != "" {
		req.Header.Set("X-Correlation-ID", creds.correlationID)
	}
}
