package service

import (
	"fmt"
	"strings"

	"github.com/iurnickita/swadbot/internal/model"
)

// Тексты сообщений

const (
	textWelcome      = "Welcome to Swad Homemade Pickles!"
	textThankYou     = "Thank you for shopping with Swad! Your order has been placed."
	textShopAgain    = `Type "Hi" or "start" to shop again`
	textOrderFailed  = "Something went wrong while placing your order. Please try again."
	textChooseFirst  = "Choose your pickle flavour:"
	textChooseToAdd  = "Choose your pickle flavour to add:"
	textCartHeader   = "Your Cart:"
	buttonFlavour    = "Pick a flavour"
	buttonQuantity   = "Pick quantity"
	buttonNextAction = "Next action"
	buttonFinalize   = "Finalize Order"
)

func flavourMenu(body string) model.ListMessage {
	options := make([]model.ListOption, 0, len(model.Flavours))
	for _, flavour := range model.Flavours {
		options = append(options, model.ListOption{
			ID:    model.FlavourSelection(flavour.ID).ID(),
			Title: flavour.Title + " Pickle",
		})
	}
	return model.ListMessage{
		Body:         body,
		Button:       buttonFlavour,
		SectionTitle: "Flavours",
		Options:      options,
	}
}

func quantityMenu(flavour string) model.ListMessage {
	options := make([]model.ListOption, 0, len(model.Quantities))
	for _, grams := range model.Quantities {
		options = append(options, model.ListOption{
			ID:    model.QuantitySelection(grams).ID(),
			Title: grams + " gm",
		})
	}
	return model.ListMessage{
		Body:         fmt.Sprintf("You chose %s pickle. Select quantity:", model.FlavourTitle(flavour)),
		Button:       buttonQuantity,
		SectionTitle: "Quantities",
		Options:      options,
	}
}

func cartActionMenu(flavour string, grams string) model.ListMessage {
	return model.ListMessage{
		Body:         fmt.Sprintf("You added %s pickle - %s gm to your cart.", model.FlavourTitle(flavour), grams),
		Button:       buttonNextAction,
		SectionTitle: "Cart Actions",
		Options: []model.ListOption{
			{ID: model.AddMoreSelection.ID(), Title: "Add More"},
			{ID: model.CheckoutSelection.ID(), Title: "Checkout"},
			{ID: model.RestartSelection.ID(), Title: "Restart"},
		},
	}
}

func checkoutMenu(cart []model.LineItem) model.ListMessage {
	return model.ListMessage{
		Body:         cartSummary(cart),
		Button:       buttonFinalize,
		SectionTitle: "Finalize",
		Options: []model.ListOption{
			{ID: model.ConfirmSelection.ID(), Title: "Confirm"},
			{ID: model.RestartSelection.ID(), Title: "Restart"},
		},
	}
}

// cartSummary numbers the items from 1 in the order they were added.
func cartSummary(cart []model.LineItem) string {
	lines := make([]string, 0, len(cart)+1)
	lines = append(lines, textCartHeader)
	for i, item := range cart {
		lines = append(lines, fmt.Sprintf("%d. %s - %s gm", i+1, model.FlavourTitle(item.Flavour()), item.Quantity()))
	}
	return strings.Join(lines, "\n")
}
