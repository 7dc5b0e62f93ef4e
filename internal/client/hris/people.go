package hris

import (
	"context"
	"fmt"
	"iter"
	"net/url"

	"github.com/nimbushr/syncengine/internal/domain"
	"github.com/nimbushr/syncengine/internal/httpx"
)

type peoplePage struct {
	Items []personDTO `json:"items"`
	Next  string      `json:"next"`
}

// ListPeople streams active people via the v2 listing, projected fields
// only, includeAll=false (§4.5.1 "Row generation"). The page size shrinks
// automatically if the upstream rejects it as too large.
func (c *Client) ListPeople(ctx context.Context) iter.Seq2[domain.Person, error] {
	fetch := func(cursor string) ([]domain.Person, string, error) {
		for {
			q := url.Values{}
			q.Set("includeAll", "false")
			q.Set("limit", fmt.Sprint(c.currentPageSize()))
			if cursor != "" {
				q.Set("from", cursor)
			}

			var page peoplePage
			reqURL := c.baseURLV2 + "/people?" + q.Encode()
			err := c.doJSON(ctx, "GET", reqURL, nil, &page)
			if err == nil {
				people := make([]domain.Person, len(page.Items))
				for i, dto := range page.Items {
					people[i] = dto.toDomain()
				}
				return people, page.Next, nil
			}

			if isPageSizeError(err) {
				c.halvePageSize()
				continue
			}
			return nil, "", err
		}
	}

	return httpx.Paginate(fetch)
}

// GetPerson fetches a single person by HRIS id (used to resolve a
// time-off owner's email, §4.3.1 step 2).
func (c *Client) GetPerson(ctx context.Context, id string) (domain.Person, error) {
	var dto personDTO
	err := c.doJSON(ctx, "GET", c.baseURLV2+"/people/"+id, nil, &dto)
	if err != nil {
		return domain.Person{}, fmt.Errorf("hris: get person %s: %w", id, err)
	}
	return dto.toDomain(), nil
}

// EmailExists probes whether any current person already holds email as a
// work or personal address, via the same `q=field\value` filtered-query
// idiom the legacy job lookup uses (grounded on the retrieved source's
// `ch_find_job`/`ch_email_exists`, which query `q=jobid\{id}` and
// `q=contact workemail\{email}` respectively against the same people
// endpoint). Used by the hire flow's unique-work-email probe (§4.3.7).
func (c *Client) EmailExists(ctx context.Context, email string) (bool, error) {
	for _, field := range []string{"workEmail", "personalEmail"} {
		q := url.Values{}
		q.Set("q", field+`\`+email)
		q.Set("fields", field)

		var page peoplePage
		reqURL := c.baseURLV2 + "/people?" + q.Encode()
		if err := c.doJSON(ctx, "GET", reqURL, nil, &page); err != nil {
			return false, fmt.Errorf("hris: email exists %s: %w", email, err)
		}
		if len(page.Items) > 0 {
			return true, nil
		}
	}
	return false, nil
}

// EndDateOrg returns the organizational end date for a terminated person,
// used by the delta snapshot export to stamp a deferred terminal row
// (§4.5.1 step 3).
func (c *Client) EndDateOrg(ctx context.Context, id string) (string, error) {
	var dto personDTO
	err := c.doJSON(ctx, "GET", c.baseURLV2+"/people/"+id, nil, &dto)
	if err != nil {
		return "", fmt.Errorf("hris: get person %s: %w", id, err)
	}
	return dto.EndDateOrg, nil
}
