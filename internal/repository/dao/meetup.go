package dao

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// rsvpPageSize is how many records one RSVP feed page carries. A shorter
// page means the feed is exhausted.
const rsvpPageSize = 200

// HTTPError is a non-2xx response from the Meetup API.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// TokenProvider hands out the bearer credential sent on every call.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

type RsvpMember struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RsvpPayload is the raw feed shape. Member and Guests stay pointers so a
// missing field is distinguishable from a zero value.
type RsvpPayload struct {
	Response string      `json:"response"`
	Guests   *int        `json:"guests"`
	Member   *RsvpMember `json:"member"`
}

// PromotionReceipt is the confirmation the legacy RSVP endpoint returns.
type PromotionReceipt struct {
	MemberID int64
	Name     string
}

type MeetupDAO struct {
	baseURL    string
	tokens     TokenProvider
	httpClient *http.Client
}

func NewMeetupDAO(baseURL string, tokens TokenProvider, httpClient *http.Client) *MeetupDAO {
	return &MeetupDAO{
		baseURL:    baseURL,
		tokens:     tokens,
		httpClient: httpClient,
	}
}

// ScanRsvps walks the paginated RSVP feed for the event and returns every
// record. The feed is consumed fully before returning.
func (d *MeetupDAO) ScanRsvps(ctx context.Context, groupID, eventID string) ([]RsvpPayload, error) {
	var all []RsvpPayload

	for offset := 0; ; offset++ {
		params := url.Values{}
		params.Set("page", strconv.Itoa(rsvpPageSize))
		params.Set("offset", strconv.Itoa(offset))

		path := fmt.Sprintf("/%s/events/%s/rsvps?%s",
			url.PathEscape(groupID), url.PathEscape(eventID), params.Encode())

		var page []RsvpPayload
		if err := d.doRequest(ctx, http.MethodGet, path, &page); err != nil {
			return nil, fmt.Errorf("rsvp page %d: %w", offset, err)
		}

		all = append(all, page...)
		if len(page) < rsvpPageSize {
			return all, nil
		}
	}
}

// PromoteMember flips a waitlisted member to yes through the legacy RSVP
// endpoint, which takes its parameters in the query string.
// WARNING: there is no API call to undo this.
func (d *MeetupDAO) PromoteMember(ctx context.Context, memberID int64, eventID string) (PromotionReceipt, error) {
	params := url.Values{}
	params.Set("member_id", strconv.FormatInt(memberID, 10))
	params.Set("event_id", eventID)
	params.Set("rsvp", "yes")

	var body struct {
		Member struct {
			MemberID int64  `json:"member_id"`
			Name     string `json:"name"`
		} `json:"member"`
	}
	if err := d.doRequest(ctx, http.MethodPost, "/2/rsvp?"+params.Encode(), &body); err != nil {
		return PromotionReceipt{}, err
	}

	return PromotionReceipt{
		MemberID: body.Member.MemberID,
		Name:     body.Member.Name,
	}, nil
}

func (d *MeetupDAO) doRequest(ctx context.Context, method, path string, out any) error {
	token, err := d.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("d.tokens.Token -> %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, d.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Body: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if out != nil {
		if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}
