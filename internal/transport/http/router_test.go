package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/Gunvolt24/market_arb/internal/domain"
	"github.com/Gunvolt24/market_arb/internal/ports/mocks"
	rest "github.com/Gunvolt24/market_arb/internal/transport/http"
	"github.com/Gunvolt24/market_arb/pkg/validate"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

const testSession = domain.SessionID("7b0c6a2e-3f57-4c1b-9a57-2f3f0d0e8b11")

var (
	jita  = domain.Location{ID: 10000002, Kind: domain.KindRegion}
	amarr = domain.Location{ID: 10000043, Kind: domain.KindRegion}
)

func newRouter(t *testing.T) (*mocks.MockComparisonService, http.Handler) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockComparisonService(ctrl)
	h := rest.NewHandler(svc, validate.NewRequestValidator(), noopLogger{}, time.Second)
	return svc, rest.NewRouter(h, "")
}

func serve(r http.Handler, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func ptr(v float64) *float64 { return &v }

func TestNewSession_Created(t *testing.T) {
	svc, r := newRouter(t)
	svc.EXPECT().NewSession(gomock.Any()).Return(testSession)

	w := serve(r, http.MethodPost, "/sessions", "", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d, body=%s", w.Code, w.Body.String())
	}
	var got map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got["session_id"] != string(testSession) {
		t.Fatalf("wrong session: %v", got)
	}
}

func TestEndSession_NoContent(t *testing.T) {
	svc, r := newRouter(t)
	svc.EXPECT().EndSession(gomock.Any(), testSession).Return(nil)

	w := serve(r, http.MethodDelete, "/sessions/"+string(testSession), "", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("want 204, got %d", w.Code)
	}
}

func TestEndSession_BadID(t *testing.T) {
	_, r := newRouter(t)

	w := serve(r, http.MethodDelete, "/sessions/not-a-uuid", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
}

func TestFetch_UsesBearerFallback(t *testing.T) {
	svc, r := newRouter(t)
	structure := domain.Location{ID: 1035466617946, Kind: domain.KindStructure}
	svc.EXPECT().
		FetchLocation(gomock.Any(), testSession, structure, "abc.def.ghi").
		Return(1234, nil)

	body := `{"location":{"location_id":1035466617946,"kind":"structure"}}`
	w := serve(r, http.MethodPost, "/sessions/"+string(testSession)+"/fetch", body,
		map[string]string{"Authorization": "Bearer abc.def.ghi"})
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
	var got struct {
		Orders int `json:"orders"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Orders != 1234 {
		t.Fatalf("want 1234 orders, got %d", got.Orders)
	}
}

func TestFetch_InvalidLocation(t *testing.T) {
	_, r := newRouter(t)

	body := `{"location":{"location_id":1,"kind":"planet"}}`
	w := serve(r, http.MethodPost, "/sessions/"+string(testSession)+"/fetch", body, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestCompare_OK(t *testing.T) {
	svc, r := newRouter(t)
	want := []domain.Opportunity{{
		ItemID: 34, SourcePrice: 100, DestPrice: ptr(150), Profit: ptr(50), ProfitPercent: ptr(50),
		SourceVolume: 10, Status: domain.StatusProfitable,
	}}
	svc.EXPECT().
		Compare(gomock.Any(), testSession, jita, amarr,
			domain.FilterConfiguration{MinProfit: ptr(10)}, "").
		Return(want, nil)

	body := `{"source":{"location_id":10000002,"kind":"region"},
		"dest":{"location_id":10000043,"kind":"region"},
		"filter":{"min_profit":10}}`
	w := serve(r, http.MethodPost, "/sessions/"+string(testSession)+"/compare", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
	var got struct {
		Count         int                  `json:"count"`
		Opportunities []domain.Opportunity `json:"opportunities"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Count != 1 || got.Opportunities[0].ItemID != 34 || *got.Opportunities[0].Profit != 50 {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestCompare_SessionMismatch(t *testing.T) {
	_, r := newRouter(t)

	body := `{"session_id":"1f0e7c9a-52b8-4d1e-8c55-6b5f0b2c3d44",
		"source":{"location_id":10000002,"kind":"region"},
		"dest":{"location_id":10000043,"kind":"region"}}`
	w := serve(r, http.MethodPost, "/sessions/"+string(testSession)+"/compare", body, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
}

func TestRecalculate_UnknownField(t *testing.T) {
	_, r := newRouter(t)

	body := `{"source":{"location_id":10000002,"kind":"region"},
		"dest":{"location_id":10000043,"kind":"region"},"bogus":1}`
	w := serve(r, http.MethodPost, "/sessions/"+string(testSession)+"/recalculate", body, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
}

func TestOpportunities_Pagination(t *testing.T) {
	svc, r := newRouter(t)
	svc.EXPECT().
		Opportunities(gomock.Any(), testSession, jita, amarr, 2, 4).
		Return([]domain.Opportunity{{ItemID: 1}, {ItemID: 2}}, nil)

	path := "/sessions/" + string(testSession) +
		"/opportunities?source_id=10000002&dest_id=10000043&limit=2&offset=4"
	w := serve(r, http.MethodGet, path, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestErrorStatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"session", domain.ErrSessionRequired, http.StatusBadRequest},
		{"invalid", validate.ErrInvalidRequest, http.StatusBadRequest},
		{"auth", &domain.AuthRequiredError{Reason: "token expired"}, http.StatusUnauthorized},
		{"busy", &domain.AlreadyFetchingError{Key: "region:10000002"}, http.StatusConflict},
		{"fetch", &domain.FetchError{LocationID: 1, Page: 3, Status: 403}, http.StatusBadGateway},
		{"storage", &domain.StorageError{Op: "put", Err: domain.ErrStoreFull}, http.StatusServiceUnavailable},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := rest.StatusFor(tt.err); got != tt.want {
				t.Fatalf("want %d, got %d", tt.want, got)
			}
		})
	}
}

func TestCompare_InternalErrorHidden(t *testing.T) {
	svc, r := newRouter(t)
	svc.EXPECT().
		Compare(gomock.Any(), testSession, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("secret detail"))

	body := `{"source":{"location_id":10000002,"kind":"region"},"dest":{"location_id":10000043,"kind":"region"}}`
	w := serve(r, http.MethodPost, "/sessions/"+string(testSession)+"/compare", body, nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "secret") {
		t.Fatalf("internal error leaked: %s", w.Body.String())
	}
}

func TestPing(t *testing.T) {
	_, r := newRouter(t)

	w := serve(r, http.MethodGet, "/ping", "", nil)
	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("want 200 pong, got %d %q", w.Code, w.Body.String())
	}
}
