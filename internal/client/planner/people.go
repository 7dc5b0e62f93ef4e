package planner

import (
	"context"
	"fmt"
	"iter"
	"net/url"

	"github.com/nimbushr/syncengine/internal/domain"
	"github.com/nimbushr/syncengine/internal/httpx"
)

type personDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	StartsAt  string `json:"startsAt"`
	Archived  bool   `json:"archived"`
}

func (p personDTO) toDomain() *domain.Person {
	return &domain.Person{
		ID:             p.ID,
		LegalName:      p.Name,
		WorkEmail:      p.Email,
		EmploymentType: p.Role,
		Active:         !p.Archived,
	}
}

type peoplePage struct {
	Items      []personDTO `json:"items"`
	NextCursor string      `json:"nextCursor"`
}

// ListPeople lists all planner people, paginated (§4.1).
func (c *Client) ListPeople(ctx context.Context) iter.Seq2[*domain.Person, error] {
	fetch := func(cursor string) ([]*domain.Person, string, error) {
		q := url.Values{}
		q.Set("limit", "200")
		if cursor != "" {
			q.Set("cursor", cursor)
		}

		var page peoplePage
		if err := c.doJSON(ctx, "GET", c.baseURL+"/people?"+q.Encode(), nil, &page); err != nil {
			return nil, "", err
		}

		people := make([]*domain.Person, len(page.Items))
		for i, dto := range page.Items {
			people[i] = dto.toDomain()
		}
		return people, page.NextCursor, nil
	}

	return httpx.Paginate(fetch)
}

// FindPersonByEmail resolves a planner person by email: a direct query
// first, falling back to a full scan of the people listing if the direct
// query finds nothing (§4.1). Results are TTL-cached.
func (c *Client) FindPersonByEmail(ctx context.Context, email string) (*domain.Person, error) {
	return c.personByEmail.GetOrLoad(ctx, email, func(ctx context.Context) (*domain.Person, error) {
		var page peoplePage
		q := url.Values{}
		q.Set("email", email)
		if err := c.doJSON(ctx, "GET", c.baseURL+"/people?"+q.Encode(), nil, &page); err != nil {
			return nil, fmt.Errorf("planner: find person by email: %w", err)
		}
		if len(page.Items) > 0 {
			return page.Items[0].toDomain(), nil
		}

		for p, err := range c.ListPeople(ctx) {
			if err != nil {
				return nil, fmt.Errorf("planner: scan for person by email: %w", err)
			}
			if p.WorkEmail == email {
				return p, nil
			}
		}
		return nil, fmt.Errorf("planner: %w: no person with email %s", httpx.ErrNotFound, email)
	})
}

// UpsertPerson POSTs the person to /people and drops any cached by-email
// lookup for that email (§4.1, §4.3.3). It does not look up an existing
// person by email first, and a 409 from the planner is returned as an
// error; it is not retried as a PATCH of the existing person.
func (c *Client) UpsertPerson(ctx context.Context, name, email, role, startsAt string) (*domain.Person, error) {
	body := map[string]any{
		"name":     name,
		"email":    email,
		"role":     role,
		"startsAt": startsAt,
	}

	var dto personDTO
	if err := c.doJSON(ctx, "POST", c.baseURL+"/people", body, &dto); err != nil {
		return nil, fmt.Errorf("planner: upsert person %s: %w", email, err)
	}

	c.personByEmail.Delete(email)
	return dto.toDomain(), nil
}
