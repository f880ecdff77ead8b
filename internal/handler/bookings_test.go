package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molticket/webgate/internal/session"
	"github.com/molticket/webgate/internal/upstream"
)

func newBookingsHandler(t *testing.T, upstreamHandler http.Handler) (*BookingsHandler, redismock.ClientMock, func()) {
	t.Helper()
	srv := httptest.NewServer(upstreamHandler)
	db, mock := redismock.NewClientMock()
	store := session.NewStore(db, time.Hour, 15*time.Minute)
	return NewBookingsHandler(Pages{Store: store}, upstream.New(srv.URL, time.Second)), mock, srv.Close
}

func TestUpstream401ClearsSessionAndRedirectsToLogin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /bookings/my", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token rejected", http.StatusUnauthorized)
	})
	h, mock, closeSrv := newBookingsHandler(t, mux)
	defer closeSrv()

	// the whole hash goes, all five stored fields with it
	mock.ExpectDel("session:abc").SetVal(1)
	mock.ExpectHSet("session:abc", "flash", "Your session has expired. Please log in again.").SetVal(1)
	mock.ExpectExpireNX("session:abc", 15*time.Minute).SetVal(true)

	e := newTestEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	c, rec := newTestContext(e, req, userSession())

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingDetailPicksFromList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /bookings/my", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"bookingId": 8, "eventName": "Other Show", "section": "A", "price": "30000", "status": "CONFIRMED"},
			{"bookingId": 9, "eventName": "Night Show", "section": "B", "price": "50000", "status": "PENDING"}
		]`))
	})
	h, mock, closeSrv := newBookingsHandler(t, mux)
	defer closeSrv()
	mock.ExpectHGet("session:abc", "flash").RedisNil()

	e := newTestEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/bookings/9", nil)
	c, rec := newTestContext(e, req, userSession())
	c.SetPath("/bookings/:bookingId")
	c.SetParamNames("bookingId")
	c.SetParamValues("9")

	require.NoError(t, h.Detail(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Night Show")
	assert.NotContains(t, rec.Body.String(), "Other Show")
}
