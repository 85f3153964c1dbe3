package httpserver

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofrs/uuid/v5"

	"github.com/signalhub/signalhub/internal/model"
)

func TestClientCtx_RoundTrip(t *testing.T) {
	t.Parallel()

	c := &model.Client{ID: uuid.Must(uuid.NewV4()), Name: "acme"}
	ctx := WithClient(context.Background(), c)

	got, ok := ClientFromCtx(ctx)
	if !ok || got.ID != c.ID {
		t.Fatalf("round trip failed: ok=%v got=%+v", ok, got)
	}

	if _, ok := ClientFromCtx(context.Background()); ok {
		t.Fatalf("empty context must not yield a client")
	}
}

func Test_tokenFromHeader(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "raw-token")
	if got := tokenFromHeader(r); got != "raw-token" {
		t.Fatalf("raw: got %q", got)
	}

	r.Header.Set("Authorization", "Bearer with-prefix")
	if got := tokenFromHeader(r); got != "with-prefix" {
		t.Fatalf("bearer: got %q", got)
	}

	r.Header.Set("Authorization", "  bearer lowercase  ")
	if got := tokenFromHeader(r); got != "lowercase" {
		t.Fatalf("case-insensitive prefix: got %q", got)
	}

	r.Header.Del("Authorization")
	if got := tokenFromHeader(r); got != "" {
		t.Fatalf("missing header: got %q", got)
	}
}
