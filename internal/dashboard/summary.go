package dashboard

import (
	"strconv"

	"github.com/iurnickita/swadbot/internal/model"
)

const noFlavour = "N/A"

type Summary struct {
	TotalOrders        int    `json:"total_orders"`
	UniqueUsers        int    `json:"unique_users"`
	TotalQuantity      int    `json:"total_quantity"`
	MostOrderedFlavour string `json:"most_ordered_flavour"`
}

// Summarize aggregates the orders in one pass. Quantities that are not plain
// digit strings count as zero; the most ordered flavour is picked by summed
// quantity, the earliest seen flavour wins a tie.
func Summarize(orders []model.Order) Summary {
	summary := Summary{
		TotalOrders:        len(orders),
		MostOrderedFlavour: noFlavour,
	}

	users := make(map[string]struct{})
	totals := make(map[string]int)
	var flavours []string

	for _, order := range orders {
		users[order.UserNumber] = struct{}{}

		grams, ok := parseGrams(order.Quantity)
		if ok {
			summary.TotalQuantity += grams
		}
		if _, seen := totals[order.Flavour]; !seen {
			flavours = append(flavours, order.Flavour)
		}
		totals[order.Flavour] += grams
	}
	summary.UniqueUsers = len(users)

	best := -1
	for _, flavour := range flavours {
		if totals[flavour] > best {
			best = totals[flavour]
			summary.MostOrderedFlavour = flavour
		}
	}

	return summary
}

func parseGrams(quantity string) (int, bool) {
	if quantity == "" {
		return 0, false
	}
	for _, c := range quantity {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	grams, err := strconv.Atoi(quantity)
	if err != nil {
		return 0, false
	}
	return grams, true
}
