package model

import "errors"

// Заказы

// Order - одна строка таблицы orders
type Order struct {
	ID         int64  `db:"id" json:"id"`
	UserNumber string `db:"user_number" json:"user_number"`
	Flavour    string `db:"flavour" json:"flavour"`
	Quantity   string `db:"quantity" json:"quantity"`
}

// Корзина

var (
	ErrEmptyFlavour  = errors.New("empty flavour")
	ErrEmptyQuantity = errors.New("empty quantity")
)

// LineItem - позиция корзины. Создается только через NewLineItem.
type LineItem struct {
	flavour  string
	quantity string
}

func NewLineItem(flavour string, quantity string) (LineItem, error) {
	if flavour == "" {
		return LineItem{}, ErrEmptyFlavour
	}
	if quantity == "" {
		return LineItem{}, ErrEmptyQuantity
	}
	return LineItem{flavour: flavour, quantity: quantity}, nil
}

func (item LineItem) Flavour() string {
	return item.flavour
}

func (item LineItem) Quantity() string {
	return item.quantity
}

// Входящие сообщения

type InboundKind int

const (
	InboundText InboundKind = iota + 1
	InboundSelection
)

// InboundMessage - сообщение пользователя, извлеченное из webhook
type InboundMessage struct {
	ID          string
	From        string
	Kind        InboundKind
	Text        string
	SelectionID string
}

// Исходящие сообщения

type ListOption struct {
	ID    string
	Title string
}

// ListMessage - интерактивное меню с одиночным выбором
type ListMessage struct {
	Body         string
	Button       string
	SectionTitle string
	Options      []ListOption
}
