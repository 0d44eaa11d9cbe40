package dao

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (t staticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

type failingToken struct{}

func (failingToken) Token(context.Context) (string, error) {
	return "", errors.New("no token")
}

func intPtr(i int) *int { return &i }

func makeRsvps(n int) []RsvpPayload {
	out := make([]RsvpPayload, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, RsvpPayload{
			Response: "waitlist",
			Guests:   intPtr(i % 3),
			Member:   &RsvpMember{ID: int64(i + 1), Name: fmt.Sprintf("Member %d", i+1)},
		})
	}
	return out
}

// fakeMeetup serves the paginated RSVP feed and the legacy promotion
// endpoint the way api.meetup.com does.
type fakeMeetup struct {
	rsvps []RsvpPayload

	scanRequests int
	gotAuth      string
	gotPromotion map[string]string
}

func (f *fakeMeetup) server(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/:group/events/:event/rsvps", func(c *gin.Context) {
		f.scanRequests++
		f.gotAuth = c.GetHeader("Authorization")

		page, _ := strconv.Atoi(c.Query("page"))
		offset, _ := strconv.Atoi(c.Query("offset"))

		start := offset * page
		if start >= len(f.rsvps) {
			c.JSON(http.StatusOK, []RsvpPayload{})
			return
		}
		end := start + page
		if end > len(f.rsvps) {
			end = len(f.rsvps)
		}
		c.JSON(http.StatusOK, f.rsvps[start:end])
	})
	r.POST("/2/rsvp", func(c *gin.Context) {
		f.gotAuth = c.GetHeader("Authorization")
		f.gotPromotion = map[string]string{
			"member_id": c.Query("member_id"),
			"event_id":  c.Query("event_id"),
			"rsvp":      c.Query("rsvp"),
		}

		memberID, _ := strconv.ParseInt(c.Query("member_id"), 10, 64)
		c.JSON(http.StatusOK, gin.H{
			"member": gin.H{"member_id": memberID, "name": fmt.Sprintf("Member %d", memberID)},
		})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestScanRsvpsSinglePage(t *testing.T) {
	fake := &fakeMeetup{rsvps: makeRsvps(3)}
	srv := fake.server(t)

	d := NewMeetupDAO(srv.URL, staticToken("test-token"), srv.Client())
	got, err := d.ScanRsvps(context.Background(), "gophers", "123456")
	require.NoError(t, err)

	assert.Len(t, got, 3)
	assert.Equal(t, 1, fake.scanRequests)
	assert.Equal(t, "Bearer test-token", fake.gotAuth)
	assert.Equal(t, int64(1), got[0].Member.ID)
	assert.Equal(t, "Member 1", got[0].Member.Name)
	assert.Equal(t, 0, *got[0].Guests)
}

func TestScanRsvpsPaginates(t *testing.T) {
	fake := &fakeMeetup{rsvps: makeRsvps(250)}
	srv := fake.server(t)

	d := NewMeetupDAO(srv.URL, staticToken("test-token"), srv.Client())
	got, err := d.ScanRsvps(context.Background(), "gophers", "123456")
	require.NoError(t, err)

	assert.Len(t, got, 250)
	assert.Equal(t, 2, fake.scanRequests)
	assert.Equal(t, int64(1), got[0].Member.ID)
	assert.Equal(t, int64(250), got[249].Member.ID)
}

func TestScanRsvpsExactPageMultiple(t *testing.T) {
	fake := &fakeMeetup{rsvps: makeRsvps(200)}
	srv := fake.server(t)

	d := NewMeetupDAO(srv.URL, staticToken("test-token"), srv.Client())
	got, err := d.ScanRsvps(context.Background(), "gophers", "123456")
	require.NoError(t, err)

	// A full page forces one more request, which comes back empty.
	assert.Len(t, got, 200)
	assert.Equal(t, 2, fake.scanRequests)
}

func TestScanRsvpsHTTPError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/:group/events/:event/rsvps", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	d := NewMeetupDAO(srv.URL, staticToken("test-token"), srv.Client())
	_, err := d.ScanRsvps(context.Background(), "gophers", "123456")
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Contains(t, httpErr.Body, "boom")
}

func TestScanRsvpsTokenFailure(t *testing.T) {
	fake := &fakeMeetup{rsvps: makeRsvps(1)}
	srv := fake.server(t)

	d := NewMeetupDAO(srv.URL, failingToken{}, srv.Client())
	_, err := d.ScanRsvps(context.Background(), "gophers", "123456")

	assert.Error(t, err)
	assert.Equal(t, 0, fake.scanRequests)
}

func TestPromoteMember(t *testing.T) {
	fake := &fakeMeetup{}
	srv := fake.server(t)

	d := NewMeetupDAO(srv.URL, staticToken("test-token"), srv.Client())
	receipt, err := d.PromoteMember(context.Background(), 777, "123456")
	require.NoError(t, err)

	assert.Equal(t, PromotionReceipt{MemberID: 777, Name: "Member 777"}, receipt)
	assert.Equal(t, "Bearer test-token", fake.gotAuth)
	assert.Equal(t, map[string]string{
		"member_id": "777",
		"event_id":  "123456",
		"rsvp":      "yes",
	}, fake.gotPromotion)
}

func TestPromoteMemberHTTPError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/2/rsvp", func(c *gin.Context) {
		c.JSON(http.StatusGone, gin.H{"error": "event is over"})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	d := NewMeetupDAO(srv.URL, staticToken("test-token"), srv.Client())
	_, err := d.PromoteMember(context.Background(), 777, "123456")
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusGone, httpErr.StatusCode)
}
