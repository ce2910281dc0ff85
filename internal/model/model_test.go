package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want Selection
		err  error
	}{
		{name: "flavour", id: "flavour_onion", want: FlavourSelection("onion")},
		{name: "flavour id without separator", id: "flavour_greenchilli", want: FlavourSelection("greenchilli")},
		{name: "quantity", id: "qty_250", want: QuantitySelection("250")},
		{name: "add more", id: "add_more", want: AddMoreSelection},
		{name: "checkout", id: "checkout", want: CheckoutSelection},
		{name: "confirm", id: "confirm_order", want: ConfirmSelection},
		{name: "restart", id: "restart", want: RestartSelection},
		{name: "flavour outside catalog", id: "flavour_mango", err: ErrUnknownSelection},
		{name: "quantity outside catalog", id: "qty_1000", err: ErrUnknownSelection},
		{name: "empty flavour", id: "flavour_", err: ErrUnknownSelection},
		{name: "garbage", id: "something", err: ErrUnknownSelection},
		{name: "empty", id: "", err: ErrUnknownSelection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSelection(tt.id)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.id, got.ID())
		})
	}
}

func TestNewLineItem(t *testing.T) {
	item, err := NewLineItem("amla", "500")
	require.NoError(t, err)
	assert.Equal(t, "amla", item.Flavour())
	assert.Equal(t, "500", item.Quantity())

	_, err = NewLineItem("", "500")
	require.ErrorIs(t, err, ErrEmptyFlavour)

	_, err = NewLineItem("amla", "")
	require.ErrorIs(t, err, ErrEmptyQuantity)
}

func TestFlavourTitle(t *testing.T) {
	assert.Equal(t, "Green Chilli", FlavourTitle("greenchilli"))
	assert.Equal(t, "mango", FlavourTitle("mango"))
}
