// Package refdata resolves the payer constants (NIT, plan, razón social)
// threaded into every extraction call, either from the client-list workbook
// or from a profile document supplied directly.
package refdata

import (
	"fmt"

	"github.com/vallesalud/cartera/internal/canonical"
	"github.com/vallesalud/cartera/internal/layout"
	"github.com/vallesalud/cartera/internal/source"
)

const clientSheet = "Base Clientes"

var clientColumns = []string{"Razon Social", "Nit", "Plan"}

// Client is one payer entry of the reference workbook.
type Client struct {
	RazonSocial string
	NIT         string
	Plan        string
}

// ClientList is the in-memory payer reference data for one run.
type ClientList struct {
	entries []Client
}

// LoadClients reads the client-list workbook (sheet "Base Clientes").
func LoadClients(f source.File) (*ClientList, error) {
	grid, err := source.ExcelGrid(f, clientSheet)
	if err != nil {
		return nil, fmt.Errorf("client list: %w", err)
	}
	g := layout.Grid(grid)
	if missing := layout.Missing(g.Headers(0), clientColumns); len(missing) > 0 {
		return nil, fmt.Errorf("client list %s: missing columns %v", f.Name, missing)
	}

	list := &ClientList{}
	for _, rec := range g.Records(0) {
		razon := rec.Get("Razon Social")
		if razon == "" {
			continue
		}
		list.entries = append(list.entries, Client{
			RazonSocial: razon,
			NIT:         rec.Get("Nit"),
			Plan:        rec.Get("Plan"),
		})
	}
	return list, nil
}

// Lookup resolves a payer display name to its profile.
func (c *ClientList) Lookup(razonSocial string) (canonical.Profile, bool) {
	for _, e := range c.entries {
		if e.RazonSocial == razonSocial {
			return canonical.Profile{NIT: e.NIT, Aseguradora: e.RazonSocial, Plan: e.Plan}, true
		}
	}
	return canonical.Profile{}, false
}

// Plans returns the distinct plan names in first-seen order.
func (c *ClientList) Plans() []string {
	seen := map[string]struct{}{}
	var plans []string
	for _, e := range c.entries {
		if _, ok := seen[e.Plan]; ok {
			continue
		}
		seen[e.Plan] = struct{}{}
		plans = append(plans, e.Plan)
	}
	return plans
}

// Entities returns the payer display names for a plan; an empty plan selects
// all of them.
func (c *ClientList) Entities(plan string) []string {
	seen := map[string]struct{}{}
	var names []string
	for _, e := range c.entries {
		if plan != "" && e.Plan != plan {
			continue
		}
		if _, ok := seen[e.RazonSocial]; ok {
			continue
		}
		seen[e.RazonSocial] = struct{}{}
		names = append(names, e.RazonSocial)
	}
	return names
}
