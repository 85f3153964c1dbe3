package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/signalhub/signalhub/internal/errs"
	"github.com/signalhub/signalhub/internal/model"
)

type fakeAuth struct {
	byToken map[string]*model.Client
}

func (f *fakeAuth) Authenticate(_ context.Context, token string) (*model.Client, error) {
	c, ok := f.byToken[token]
	if !ok {
		return nil, errs.ErrUnauthorized
	}
	return c, nil
}

type fakeSignalSvc struct {
	checkErr   map[string]error
	score      float64
	compareErr error

	calls int
}

func (f *fakeSignalSvc) CheckReceived(_ context.Context, _ uuid.UUID, externalUUID string) error {
	f.calls++
	return f.checkErr[externalUUID]
}

func (f *fakeSignalSvc) Compare(_ context.Context, _ uuid.UUID, _, _ string) (float64, error) {
	f.calls++
	return f.score, f.compareErr
}

type fakeDeviceSvc struct {
	devices []model.Device
	err     error

	calls int
}

func (f *fakeDeviceSvc) ListForClient(context.Context, uuid.UUID) ([]model.Device, error) {
	f.calls++
	return f.devices, f.err
}

type env struct {
	router  http.Handler
	signals *fakeSignalSvc
	devices *fakeDeviceSvc
	client  *model.Client
}

func newEnv(t *testing.T) *env {
	t.Helper()
	client := &model.Client{ID: uuid.Must(uuid.NewV4()), Name: "acme", AccessToken: "t1"}
	signals := &fakeSignalSvc{checkErr: map[string]error{}}
	devices := &fakeDeviceSvc{}
	srv := New(&fakeAuth{byToken: map[string]*model.Client{"t1": client}}, signals, devices, zap.NewNop())
	return &env{router: srv.Router(), signals: signals, devices: devices, client: client}
}

func (e *env) do(method, path, token, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	if token != "" {
		r.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, r)
	return w
}

func TestAPI_UnknownTokenRejectedEverywhere(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	for _, req := range [][2]string{
		{http.MethodGet, "/api/v1/signals/u1"},
		{http.MethodPost, "/api/v1/signals/compare"},
		{http.MethodGet, "/api/v1/devices"},
	} {
		w := e.do(req[0], req[1], "bad-token", "")
		require.Equal(t, http.StatusUnauthorized, w.Code, req[1])
		w = e.do(req[0], req[1], "", "")
		require.Equal(t, http.StatusUnauthorized, w.Code, req[1])
	}
	// The gate rejects before any handler runs.
	require.Zero(t, e.signals.calls)
	require.Zero(t, e.devices.calls)
}

func TestAPI_GetSignal(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.signals.checkErr["owned"] = nil
	e.signals.checkErr["foreign"] = errs.ErrForbidden
	e.signals.checkErr["missing"] = errs.ErrNotFound

	require.Equal(t, http.StatusNoContent, e.do(http.MethodGet, "/api/v1/signals/owned", "t1", "").Code)
	require.Equal(t, http.StatusForbidden, e.do(http.MethodGet, "/api/v1/signals/foreign", "t1", "").Code)
	require.Equal(t, http.StatusNotFound, e.do(http.MethodGet, "/api/v1/signals/missing", "t1", "").Code)
}

func TestAPI_GetSignal_BearerPrefixAccepted(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.signals.checkErr["owned"] = nil

	require.Equal(t, http.StatusNoContent, e.do(http.MethodGet, "/api/v1/signals/owned", "Bearer t1", "").Code)
}

func TestAPI_CompareSignals(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.signals.score = 100

	w := e.do(http.MethodPost, "/api/v1/signals/compare", "t1", `{"signal_1_uuid":"ua","signal_2_uuid":"ub"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Percentage float64 `json:"percentage"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, float64(100), resp.Percentage)
}

func TestAPI_CompareSignals_Errors(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	w := e.do(http.MethodPost, "/api/v1/signals/compare", "t1", `{garbage`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	e.signals.compareErr = errs.ErrNotFound
	w = e.do(http.MethodPost, "/api/v1/signals/compare", "t1", `{"signal_1_uuid":"ua","signal_2_uuid":"missing"}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	e.signals.compareErr = errs.ErrForbidden
	w = e.do(http.MethodPost, "/api/v1/signals/compare", "t1", `{"signal_1_uuid":"ua","signal_2_uuid":"foreign"}`)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAPI_ListDevices(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.devices.devices = []model.Device{
		{ID: uuid.Must(uuid.NewV4()), ClientID: e.client.ID, ExternalID: "dev-1", IPAddress: "10.0.0.5"},
		{ID: uuid.Must(uuid.NewV4()), ClientID: e.client.ID, ExternalID: "dev-2", IPAddress: "10.0.0.6"},
	}

	w := e.do(http.MethodGet, "/api/v1/devices", "t1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp []struct {
		IPAddress string `json:"ip_address"`
		ID        string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	require.Equal(t, "dev-1", resp[0].ID)
	require.Equal(t, "10.0.0.5", resp[0].IPAddress)
}

func TestAPI_ListDevices_EmptyIsArray(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	w := e.do(http.MethodGet, "/api/v1/devices", "t1", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}
