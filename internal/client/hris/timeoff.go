package hris

import (
	"context"
	"fmt"
	"iter"
	"net/url"
	"strings"
	"time"

	"github.com/nimbushr/syncengine/internal/domain"
	"github.com/nimbushr/syncengine/internal/httpx"
)

type timeOffPage struct {
	Items []timeOffDTO `json:"items"`
	Next  string       `json:"next"`
}

// ListTimeOff lists time off within [from, to], enriched with person email
// by a batched v1 ids= lookup of up to 100 ids per batch (§4.1).
func (c *Client) ListTimeOff(ctx context.Context, from, to time.Time) iter.Seq2[domain.TimeOff, error] {
	fetch := func(cursor string) ([]domain.TimeOff, string, error) {
		q := url.Values{}
		q.Set("startDate", from.Format("2006-01-02"))
		q.Set("endDate", to.Format("2006-01-02"))
		q.Set("limit", fmt.Sprint(c.currentPageSize()))
		if cursor != "" {
			q.Set("from", cursor)
		}

		var page timeOffPage
		reqURL := c.baseURLV2 + "/time_off?" + q.Encode()
		if err := c.doJSON(ctx, "GET", reqURL, nil, &page); err != nil {
			return nil, "", err
		}

		entries := make([]domain.TimeOff, len(page.Items))
		for i, dto := range page.Items {
			entries[i] = dto.toDomain()
		}

		if err := c.enrichWithEmails(ctx, entries); err != nil {
			return nil, "", err
		}

		return entries, page.Next, nil
	}

	return httpx.Paginate(fetch)
}

// GetTimeOff fetches a single time-off entry by id (§4.3.1 step 1).
func (c *Client) GetTimeOff(ctx context.Context, id string) (domain.TimeOff, error) {
	var dto timeOffDTO
	err := c.doJSON(ctx, "GET", c.baseURLV2+"/time_off/"+id, nil, &dto)
	if err != nil {
		return domain.TimeOff{}, fmt.Errorf("hris: get time off %s: %w", id, err)
	}
	return dto.toDomain(), nil
}

const maxBatchIDs = 100

// enrichWithEmails fills PersonEmail on entries missing it using the
// legacy v1 batched lookup, in groups of up to 100 ids.
func (c *Client) enrichWithEmails(ctx context.Context, entries []domain.TimeOff) error {
	var missing []string
	for _, e := range entries {
		if e.PersonEmail == "" && e.PersonWorkEmail == "" && e.PersonPersonalEmail == "" && e.PersonID != "" {
			missing = append(missing, e.PersonID)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	emails := make(map[string]string, len(missing))
	for start := 0; start < len(missing); start += maxBatchIDs {
		end := min(start+maxBatchIDs, len(missing))
		batch, err := c.batchPersonEmails(ctx, missing[start:end])
		if err != nil {
			return err
		}
		for id, email := range batch {
			emails[id] = email
		}
	}

	for i, e := range entries {
		if email, ok := emails[e.PersonID]; ok && e.PersonEmail == "" {
			entries[i].PersonEmail = email
		}
	}
	return nil
}

// PersonEmailByID resolves a single person's email via the legacy v1
// batched lookup, the fourth of five steps in the time-off owner-email
// resolution order (§4.3.1 step 2).
func (c *Client) PersonEmailByID(ctx context.Context, id string) (string, error) {
	emails, err := c.batchPersonEmails(ctx, []string{id})
	if err != nil {
		return "", err
	}
	return emails[id], nil
}

func (c *Client) batchPersonEmails(ctx context.Context, ids []string) (map[string]string, error) {
	var result []batchPersonDTO
	reqURL := c.baseURLV1 + "/people?ids=" + strings.Join(ids, ",")
	if err := c.doJSON(ctx, "GET", reqURL, nil, &result); err != nil {
		return nil, fmt.Errorf("hris: batch person lookup: %w", err)
	}

	emails := make(map[string]string, len(result))
	for _, p := range result {
		emails[p.ID] = p.Email
	}
	return emails, nil
}
