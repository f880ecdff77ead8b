package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molticket/webgate/internal/model"
	"github.com/molticket/webgate/internal/session"
	"github.com/molticket/webgate/internal/upstream"
)

func newBookingHandler(t *testing.T, upstreamHandler http.Handler) (*BookingHandler, redismock.ClientMock, func()) {
	t.Helper()
	srv := httptest.NewServer(upstreamHandler)
	db, mock := redismock.NewClientMock()
	store := session.NewStore(db, time.Hour, 15*time.Minute)
	return NewBookingHandler(Pages{Store: store}, upstream.New(srv.URL, time.Second)), mock, srv.Close
}

func postForm(e *echo.Echo, target string, form map[string]string, sess *session.Session) (echo.Context, *httptest.ResponseRecorder) {
	values := make([]string, 0, len(form))
	for k, v := range form {
		values = append(values, k+"="+v)
	}
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(strings.Join(values, "&")))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return newTestContext(e, req, sess)
}

func TestCreateBookingRedirectsToPayment(t *testing.T) {
	var gotBooking model.CreateBooking
	mux := http.NewServeMux()
	mux.HandleFunc("POST /bookings", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBooking))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"bookingId": 9, "eventName": "Night Show", "status": "PENDING"}`))
	})
	mux.HandleFunc("POST /payment/ready/9", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"bookingId": 9, "tid": "T123", "paymentUrl": "https://pay.example/redirect/T123", "status": "READY"}`))
	})
	h, mock, closeSrv := newBookingHandler(t, mux)
	defer closeSrv()
	mock.ExpectGetDel("form:abc:tok-1").SetVal("1")

	e := newTestEcho(t)
	c, rec := postForm(e, "/booking/7", map[string]string{"form_token": "tok-1", "seat_id": "501"}, userSession())
	c.SetPath("/booking/:eventId")
	c.SetParamNames("eventId")
	c.SetParamValues("7")

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "https://pay.example/redirect/T123", rec.Header().Get(echo.HeaderLocation))

	assert.Equal(t, int64(7), gotBooking.EventID)
	require.NotNil(t, gotBooking.SeatID)
	assert.Equal(t, int64(501), *gotBooking.SeatID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingOmitsSeatForCapacityEvents(t *testing.T) {
	var gotBooking model.CreateBooking
	mux := http.NewServeMux()
	mux.HandleFunc("POST /bookings", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBooking))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"bookingId": 11, "status": "PENDING"}`))
	})
	mux.HandleFunc("POST /payment/ready/11", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"bookingId": 11, "paymentUrl": "https://pay.example/redirect/T456"}`))
	})
	h, mock, closeSrv := newBookingHandler(t, mux)
	defer closeSrv()
	mock.ExpectGetDel("form:abc:tok-2").SetVal("1")

	e := newTestEcho(t)
	c, rec := postForm(e, "/booking/8", map[string]string{"form_token": "tok-2"}, userSession())
	c.SetPath("/booking/:eventId")
	c.SetParamNames("eventId")
	c.SetParamValues("8")

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Nil(t, gotBooking.SeatID)
}

func TestCreateBookingRejectsReplayedToken(t *testing.T) {
	upstreamHit := false
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		upstreamHit = true
		http.Error(w, "unexpected call", http.StatusInternalServerError)
	})
	h, mock, closeSrv := newBookingHandler(t, mux)
	defer closeSrv()
	mock.ExpectGetDel("form:abc:tok-used").RedisNil()
	mock.ExpectHSet("session:abc", "flash", "This booking is already being processed.").SetVal(1)
	mock.ExpectExpireNX("session:abc", 15*time.Minute).SetVal(true)

	e := newTestEcho(t)
	c, rec := postForm(e, "/booking/7", map[string]string{"form_token": "tok-used", "seat_id": "501"}, userSession())
	c.SetPath("/booking/:eventId")
	c.SetParamNames("eventId")
	c.SetParamValues("7")

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/booking/7", rec.Header().Get(echo.HeaderLocation))
	assert.False(t, upstreamHit, "a replayed submit must never reach the upstream")
}

func TestSectionQuery(t *testing.T) {
	assert.Equal(t, "", sectionQuery("", 0))
	assert.Equal(t, "?section=A", sectionQuery("A", 0))
	assert.Equal(t, "?seat=5", sectionQuery("", 5))
	assert.Equal(t, "?seat=5&section=A", sectionQuery("A", 5))
}

func TestBuildCellsToggleLinks(t *testing.T) {
	seats := []*model.Seat{
		{SeatID: 1, Section: "A", Row: 1, Col: 1, Status: model.SeatAvailable},
		{SeatID: 2, Section: "A", Row: 1, Col: 2, Status: model.SeatSold},
	}
	grids := []model.SectionGrid{{Section: "A", Rows: [][]*model.Seat{seats}}}

	views := buildCells(grids, "/booking/7", "A", 1)
	require.Len(t, views, 1)
	row := views[0].Rows[0]
	require.Len(t, row, 2)

	// clicking the selected seat deselects it: the link drops the seat param
	assert.True(t, row[0].Selected)
	assert.Equal(t, "/booking/7?section=A", row[0].Href)
	// sold seats render without a link
	assert.False(t, row[1].Selected)
	assert.Empty(t, row[1].Href)
}
