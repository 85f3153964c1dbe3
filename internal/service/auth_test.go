package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"

	"github.com/signalhub/signalhub/internal/errs"
	"github.com/signalhub/signalhub/internal/model"
	"github.com/signalhub/signalhub/internal/repository"
)

type fakeClients struct {
	byToken map[string]*model.Client
	getErr  error

	creates int
}

var _ repository.ClientRepository = (*fakeClients)(nil)

func (f *fakeClients) GetByToken(_ context.Context, token string) (*model.Client, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	c, ok := f.byToken[token]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cpy := *c
	return &cpy, nil
}

func (f *fakeClients) Create(_ context.Context, c *model.Client) error {
	f.creates++
	return nil
}

func TestAuth_Authenticate_KnownToken(t *testing.T) {
	t.Parallel()
	want := &model.Client{ID: uuid.Must(uuid.NewV4()), Name: "acme", AccessToken: "t1"}
	s := NewAuthService(&fakeClients{byToken: map[string]*model.Client{"t1": want}})

	got, err := s.Authenticate(context.Background(), "t1")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != want.ID {
		t.Fatalf("client mismatch: %s vs %s", got.ID, want.ID)
	}
}

func TestAuth_Authenticate_UnknownOrEmptyToken(t *testing.T) {
	t.Parallel()
	clients := &fakeClients{byToken: map[string]*model.Client{}}
	s := NewAuthService(clients)

	if _, err := s.Authenticate(context.Background(), "nope"); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
	if _, err := s.Authenticate(context.Background(), ""); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized on empty token, got %v", err)
	}
	if clients.creates != 0 {
		t.Fatalf("auth failure must not mutate the store")
	}
}

func TestAuth_Authenticate_LookupErrorMasked(t *testing.T) {
	t.Parallel()
	for name, lookupErr := range map[string]error{
		"store error":      errors.New("connection reset"),
		"canceled context": context.Canceled,
	} {
		s := NewAuthService(&fakeClients{getErr: lookupErr})

		_, err := s.Authenticate(context.Background(), "t1")
		if !errors.Is(err, errs.ErrUnauthorized) {
			t.Fatalf("%s: want ErrUnauthorized, got %v", name, err)
		}
	}
}
