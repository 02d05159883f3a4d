// Package recommend maps client segments to product suggestions.
package recommend

import (
	"context"

	"github.com/PrettyR/ClientSphere/pkg/data"
)

var rules = map[int][]string{
	0: {"Premium Wealth Plan", "High-yield savings"},
	1: {"Investment Advisory", "Estate planning"},
	2: {"Credit Line", "Short-term loans"},
}

// For returns the products recommended for a cluster. An unassigned or
// unknown cluster gets an empty list.
func For(cluster *int) []string {
	if cluster == nil {
		return []string{}
	}
	products, ok := rules[*cluster]
	if !ok {
		return []string{}
	}
	return append([]string(nil), products...)
}

// Getter looks up one stored client.
type Getter interface {
	Get(ctx context.Context, clientID string) (data.ClientRecord, error)
}

// Result is a recommendation for one client.
type Result struct {
	ClientID string   `json:"client_id"`
	Cluster  *int     `json:"cluster"`
	Products []string `json:"recommendations"`
}

// ForClient recommends products from a client's stored cluster label.
func ForClient(ctx context.Context, g Getter, clientID string) (Result, error) {
	rec, err := g.Get(ctx, clientID)
	if err != nil {
		return Result{}, err
	}
	return Result{ClientID: rec.ClientID, Cluster: rec.ClusterLabel, Products: For(rec.ClusterLabel)}, nil
}
