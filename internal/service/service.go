package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/iurnickita/swadbot/internal/model"
	"github.com/iurnickita/swadbot/internal/service/waclient"
	"github.com/iurnickita/swadbot/internal/session"
	"github.com/iurnickita/swadbot/internal/store"
)

type Service interface {
	Handle(ctx context.Context, in model.InboundMessage) error
}

var (
	ErrInsufficientData   = errors.New("insufficient data")
	ErrUnsupportedMessage = errors.New("unsupported message")
	ErrNoFlavourSelected  = errors.New("quantity selected before flavour")
	ErrPlaceOrder         = errors.New("place order")
)

var greetings = []string{"hi", "start"}

type service struct {
	store     store.Store
	sessions  *session.Store
	messenger waclient.Client
	zaplog    *zap.Logger
}

func NewService(store store.Store, sessions *session.Store, messenger waclient.Client, zaplog *zap.Logger) Service {
	return &service{
		store:     store,
		sessions:  sessions,
		messenger: messenger,
		zaplog:    zaplog,
	}
}

func (service *service) Handle(ctx context.Context, in model.InboundMessage) error {
	if in.From == "" {
		return ErrInsufficientData
	}

	switch in.Kind {
	case model.InboundText:
		return service.handleText(ctx, in.From, in.Text)
	case model.InboundSelection:
		selection, err := model.ParseSelection(in.SelectionID)
		if err != nil {
			return errors.Wrap(err, in.SelectionID)
		}
		return service.handleSelection(ctx, in.From, selection)
	default:
		return ErrUnsupportedMessage
	}
}

func (service *service) handleText(ctx context.Context, user string, text string) error {
	body := strings.ToLower(text)
	for _, greeting := range greetings {
		if strings.Contains(body, greeting) {
			service.sessions.With(user, func(conv *session.Conversation) {
				conv.Reset()
				service.greet(ctx, user)
			})
			return nil
		}
	}

	service.zaplog.Debug("text ignored", zap.String("user", user))
	return nil
}

func (service *service) handleSelection(ctx context.Context, user string, selection model.Selection) error {
	var err error
	service.sessions.With(user, func(conv *session.Conversation) {
		err = service.apply(ctx, user, conv, selection)
	})
	return err
}

// apply runs one transition of the conversation. Called under the user's lock.
func (service *service) apply(ctx context.Context, user string, conv *session.Conversation, selection model.Selection) error {
	switch selection.Kind {
	case model.SelectionFlavour:
		conv.Current = session.Draft{Flavour: selection.Value}
		service.sendList(ctx, user, quantityMenu(selection.Value))

	case model.SelectionQuantity:
		if conv.Current.Flavour == "" {
			return ErrNoFlavourSelected
		}
		conv.Current.Quantity = selection.Value
		service.sendList(ctx, user, cartActionMenu(conv.Current.Flavour, selection.Value))

	case model.SelectionAddMore:
		service.commit(user, conv)
		service.sendList(ctx, user, flavourMenu(textChooseToAdd))

	case model.SelectionCheckout:
		service.commit(user, conv)
		service.sendList(ctx, user, checkoutMenu(conv.Cart))

	case model.SelectionConfirm:
		return service.placeOrder(ctx, user, conv)

	case model.SelectionRestart:
		conv.Reset()
		service.greet(ctx, user)

	default:
		return model.ErrUnknownSelection
	}
	return nil
}

func (service *service) greet(ctx context.Context, user string) {
	service.sendText(ctx, user, textWelcome)
	service.sendList(ctx, user, flavourMenu(textChooseFirst))
}

func (service *service) commit(user string, conv *session.Conversation) {
	if err := conv.Commit(); err != nil {
		service.zaplog.Warn("incomplete item dropped", zap.String("user", user), zap.Error(err))
	}
}

// placeOrder пишет корзину одной транзакцией. При ошибке корзина сохраняется для повтора
func (service *service) placeOrder(ctx context.Context, user string, conv *session.Conversation) error {
	if len(conv.Cart) == 0 {
		service.zaplog.Warn("empty cart confirmed", zap.String("user", user))
	}

	n, err := service.store.OrdersPost(ctx, user, conv.Cart)
	if err != nil {
		service.sendText(ctx, user, textOrderFailed)
		return errors.Wrap(ErrPlaceOrder, err.Error())
	}

	service.zaplog.Info("order placed", zap.String("user", user), zap.Int("items", n))
	service.sendText(ctx, user, textThankYou)
	service.sendText(ctx, user, textShopAgain)
	conv.Reset()
	return nil
}

// Отправка без повторов: ошибки шлюза только логируются

func (service *service) sendText(ctx context.Context, user string, body string) {
	if err := service.messenger.SendText(ctx, user, body); err != nil {
		service.zaplog.Warn("send text failed", zap.String("user", user), zap.Error(err))
	}
}

func (service *service) sendList(ctx context.Context, user string, msg model.ListMessage) {
	if err := service.messenger.SendList(ctx, user, msg); err != nil {
		service.zaplog.Warn("send list failed", zap.String("user", user), zap.Error(err))
	}
}
