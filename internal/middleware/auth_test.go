package middleware

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/taskloop/backend/domain"
	"github.com/taskloop/backend/pkg/token"
)

func newGuardedHandler(t *testing.T) (func(fasthttp.RequestHandler) fasthttp.RequestHandler, *token.Manager) {
	t.Helper()
	tokens, err := token.NewManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("token.NewManager: %v", err)
	}
	return Auth(tokens, nil), tokens
}

func errorField(t *testing.T, ctx *fasthttp.RequestCtx) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("response body %q: %v", ctx.Response.Body(), err)
	}
	return body.Error
}

func TestAuthMissingHeader(t *testing.T) {
	guard, _ := newGuardedHandler(t)

	reached := false
	handler := guard(func(ctx *fasthttp.RequestCtx) { reached = true })

	var ctx fasthttp.RequestCtx
	handler(&ctx)

	if reached {
		t.Fatal("handler ran without a token")
	}
	if ctx.Response.StatusCode() != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", ctx.Response.StatusCode())
	}
	if got := errorField(t, &ctx); got != "No token provided" {
		t.Fatalf("error %q, want %q", got, "No token provided")
	}
}

func TestAuthWrongScheme(t *testing.T) {
	guard, tokens := newGuardedHandler(t)
	signed, _ := tokens.Issue("user-1")

	handler := guard(func(ctx *fasthttp.RequestCtx) { t.Fatal("handler reached") })

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set("Authorization", "Basic "+signed)
	handler(&ctx)

	if ctx.Response.StatusCode() != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", ctx.Response.StatusCode())
	}
	if got := errorField(t, &ctx); got != "No token provided" {
		t.Fatalf("error %q, want %q", got, "No token provided")
	}
}

func TestAuthInvalidToken(t *testing.T) {
	guard, _ := newGuardedHandler(t)

	handler := guard(func(ctx *fasthttp.RequestCtx) { t.Fatal("handler reached") })

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set("Authorization", "Bearer not-a-token")
	handler(&ctx)

	if ctx.Response.StatusCode() != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", ctx.Response.StatusCode())
	}
	if got := errorField(t, &ctx); got != "Invalid token" {
		t.Fatalf("error %q, want %q", got, "Invalid token")
	}
}

func TestAuthExpiredToken(t *testing.T) {
	expiring, err := token.NewManager("test-secret", time.Millisecond)
	if err != nil {
		t.Fatalf("token.NewManager: %v", err)
	}
	signed, _ := expiring.Issue("user-1")
	time.Sleep(5 * time.Millisecond)

	handler := Auth(expiring, nil)(func(ctx *fasthttp.RequestCtx) { t.Fatal("handler reached") })

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set("Authorization", "Bearer "+signed)
	handler(&ctx)

	if got := errorField(t, &ctx); got != "Invalid token" {
		t.Fatalf("error %q, want %q", got, "Invalid token")
	}
}

// The guard's response bodies are the domain sentinels' messages, not
// free-floating string literals.
func TestAuthResponsesUseSentinelMessages(t *testing.T) {
	guard, _ := newGuardedHandler(t)
	handler := guard(func(ctx *fasthttp.RequestCtx) {})

	var missing fasthttp.RequestCtx
	handler(&missing)
	if got := errorField(t, &missing); got != domain.ErrNoToken.Message {
		t.Fatalf("missing token error %q, want %q", got, domain.ErrNoToken.Message)
	}

	var bad fasthttp.RequestCtx
	bad.Request.Header.Set("Authorization", "Bearer nope")
	handler(&bad)
	if got := errorField(t, &bad); got != domain.ErrInvalidToken.Message {
		t.Fatalf("bad token error %q, want %q", got, domain.ErrInvalidToken.Message)
	}
}

func TestAuthValidTokenAttachesUserID(t *testing.T) {
	guard, tokens := newGuardedHandler(t)
	signed, _ := tokens.Issue("user-1")

	var gotUserID string
	handler := guard(func(ctx *fasthttp.RequestCtx) {
		gotUserID = UserID(ctx)
	})

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set("Authorization", "Bearer "+signed)
	handler(&ctx)

	if gotUserID != "user-1" {
		t.Fatalf("attached user id %q, want user-1", gotUserID)
	}
}
