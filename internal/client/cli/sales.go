package cli

import (
	"context"
	"fmt"
	"net/url"
	"sort"

	"github.com/mkazymov/dealerdesk/internal/client/api"
	"github.com/mkazymov/dealerdesk/internal/models"
)

// salesView prints per-branch totals of completed orders, the data behind
// the monitoring map, with a static-map link per branch when a maps key is
// configured.
func (a *App) salesView(ctx context.Context) error {
	page, err := a.orders.List(ctx, api.Params{
		Page:     1,
		PageSize: 100,
		Filters:  []api.Filter{{Field: "status", Value: string(models.OrderCompleted)}},
		Populate: []api.Populate{{Relation: "branch"}},
	})
	if err != nil {
		return err
	}

	summaries := summarize(page.Items)
	if len(summaries) == 0 {
		fmt.Fprintln(a.out, "No completed orders.")
		return nil
	}

	for _, s := range summaries {
		fmt.Fprintf(a.out, "%-20s %3d orders  %12.2f\n", s.BranchName, s.Orders, s.Revenue)
		if a.config.MapsAPIKey != "" {
			fmt.Fprintf(a.out, "  map: %s\n", staticMapURL(s, a.config.MapsAPIKey))
		}
	}
	return nil
}

// summarize aggregates orders per branch, highest revenue first. Orders
// without a populated branch are skipped.
func summarize(orders []models.Order) []models.SalesSummary {
	byBranch := make(map[int]*models.SalesSummary)
	for _, o := range orders {
		if o.Branch == nil {
			continue
		}
		s, ok := byBranch[o.Branch.ID]
		if !ok {
			s = &models.SalesSummary{
				BranchID:   o.Branch.ID,
				BranchName: o.Branch.Name,
				Latitude:   o.Branch.Latitude,
				Longitude:  o.Branch.Longitude,
			}
			byBranch[o.Branch.ID] = s
		}
		s.Orders++
		s.Revenue += o.Total
	}

	summaries := make([]models.SalesSummary, 0, len(byBranch))
	for _, s := range byBranch {
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Revenue != summaries[j].Revenue {
			return summaries[i].Revenue > summaries[j].Revenue
		}
		return summaries[i].BranchID < summaries[j].BranchID
	})
	return summaries
}

func staticMapURL(s models.SalesSummary, key string) string {
	q := url.Values{}
	q.Set("center", fmt.Sprintf("%f,%f", s.Latitude, s.Longitude))
	q.Set("zoom", "12")
	q.Set("size", "600x400")
	q.Set("markers", fmt.Sprintf("%f,%f", s.Latitude, s.Longitude))
	q.Set("key", key)
	return "https://maps.googleapis.com/maps/api/staticmap?" + q.Encode()
}
