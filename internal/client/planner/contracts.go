package planner

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Contract is a planner person contract.
type Contract struct {
	ID          string  `json:"id"`
	PersonID    string  `json:"personId"`
	CostPerHour float64 `json:"costPerHour"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
}

// isActiveAsOf reports whether the contract covers asOf (§4.3.4: "list
// active contracts for a person (filtered by date)").
func (c Contract) isActiveAsOf(asOf time.Time) bool {
	const layout = "2006-01-02"
	if start, err := time.Parse(layout, c.StartDate); err == nil && asOf.Before(start) {
		return false
	}
	if c.EndDate == "" {
		return true
	}
	end, err := time.Parse(layout, c.EndDate)
	return err != nil || !asOf.After(end)
}

// ListActiveContracts lists the contracts for a person that are active as
// of the given reference date.
func (c *Client) ListActiveContracts(ctx context.Context, personID string, asOf time.Time) ([]Contract, error) {
	var contracts []Contract
	url := c.baseURL + "/people/" + personID + "/contracts"
	if err := c.doJSON(ctx, "GET", url, nil, &contracts); err != nil {
		return nil, fmt.Errorf("planner: list contracts for %s: %w", personID, err)
	}

	active := contracts[:0]
	for _, contract := range contracts {
		if contract.isActiveAsOf(asOf) {
			active = append(active, contract)
		}
	}
	return active, nil
}

// PatchContractCostPerHour patches a contract's hourly cost, rounded to 2
// decimals (§4.3.4).
func (c *Client) PatchContractCostPerHour(ctx context.Context, contractID string, costPerHour float64) error {
	rounded := math.Round(costPerHour*100) / 100
	body := map[string]any{"costPerHour": rounded}
	url := c.baseURL + "/contracts/" + contractID
	if err := c.doJSON(ctx, "PATCH", url, body, nil); err != nil {
		return fmt.Errorf("planner: patch contract %s cost per hour: %w", contractID, err)
	}
	return nil
}
