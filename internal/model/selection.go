package model

import (
	"errors"
	"strings"
)

// Выбор пользователя в интерактивном меню

type SelectionKind int

const (
	SelectionUnknown SelectionKind = iota
	SelectionFlavour
	SelectionQuantity
	SelectionAddMore
	SelectionCheckout
	SelectionConfirm
	SelectionRestart
)

const (
	selectionFlavourPrefix  = "flavour_"
	selectionQuantityPrefix = "qty_"
	selectionAddMoreID      = "add_more"
	selectionCheckoutID     = "checkout"
	selectionConfirmID      = "confirm_order"
	selectionRestartID      = "restart"
)

var ErrUnknownSelection = errors.New("unknown selection")

type Selection struct {
	Kind SelectionKind
	// flavour id or grams, empty for the other kinds
	Value string
}

func FlavourSelection(flavour string) Selection {
	return Selection{Kind: SelectionFlavour, Value: flavour}
}

func QuantitySelection(grams string) Selection {
	return Selection{Kind: SelectionQuantity, Value: grams}
}

var (
	AddMoreSelection  = Selection{Kind: SelectionAddMore}
	CheckoutSelection = Selection{Kind: SelectionCheckout}
	ConfirmSelection  = Selection{Kind: SelectionConfirm}
	RestartSelection  = Selection{Kind: SelectionRestart}
)

// ParseSelection maps a raw list reply id to a Selection. Flavours and
// quantities outside the catalog are rejected like any other unknown id.
func ParseSelection(id string) (Selection, error) {
	switch id {
	case selectionAddMoreID:
		return AddMoreSelection, nil
	case selectionCheckoutID:
		return CheckoutSelection, nil
	case selectionConfirmID:
		return ConfirmSelection, nil
	case selectionRestartID:
		return RestartSelection, nil
	}

	if flavour, ok := strings.CutPrefix(id, selectionFlavourPrefix); ok {
		if _, ok := LookupFlavour(flavour); ok {
			return FlavourSelection(flavour), nil
		}
		return Selection{}, ErrUnknownSelection
	}
	if grams, ok := strings.CutPrefix(id, selectionQuantityPrefix); ok {
		if IsQuantity(grams) {
			return QuantitySelection(grams), nil
		}
		return Selection{}, ErrUnknownSelection
	}

	return Selection{}, ErrUnknownSelection
}

// ID is the raw id sent to the gateway as a list option id.
func (s Selection) ID() string {
	switch s.Kind {
	case SelectionFlavour:
		return selectionFlavourPrefix + s.Value
	case SelectionQuantity:
		return selectionQuantityPrefix + s.Value
	case SelectionAddMore:
		return selectionAddMoreID
	case SelectionCheckout:
		return selectionCheckoutID
	case SelectionConfirm:
		return selectionConfirmID
	case SelectionRestart:
		return selectionRestartID
	default:
		return ""
	}
}

func (k SelectionKind) String() string {
	switch k {
	case SelectionFlavour:
		return "flavour"
	case SelectionQuantity:
		return "quantity"
	case SelectionAddMore:
		return "add_more"
	case SelectionCheckout:
		return "checkout"
	case SelectionConfirm:
		return "confirm_order"
	case SelectionRestart:
		return "restart"
	default:
		return "unknown"
	}
}
