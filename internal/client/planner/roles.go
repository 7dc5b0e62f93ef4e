package planner

import (
	"context"
	"fmt"
)

// Role is a planner role/position definition.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListRoles lists all planner roles, cached process-wide (§4.1: "list
// roles (cached process-wide)") since roles change rarely relative to a
// sync run's lifetime.
func (c *Client) ListRoles(ctx context.Context) ([]Role, error) {
	return c.roles.GetOrLoad(ctx, "roles", func(ctx context.Context) ([]Role, error) {
		var roles []Role
		if err := c.doJSON(ctx, "GET", c.baseURL+"/roles", nil, &roles); err != nil {
			return nil, fmt.Errorf("planner: list roles: %w", err)
		}
		return roles, nil
	})
}
