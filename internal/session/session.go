// Package session keeps the in-memory conversation state of every customer.
// State lives only in the process; a restart drops carts that were not
// confirmed yet.
package session

import (
	"sync"

	"github.com/iurnickita/swadbot/internal/model"
)

// Draft is the line item being built, either field may still be empty.
type Draft struct {
	Flavour  string
	Quantity string
}

func (d Draft) Empty() bool {
	return d.Flavour == "" && d.Quantity == ""
}

// Conversation - корзина и текущая позиция одного пользователя
type Conversation struct {
	Cart    []model.LineItem
	Current Draft
}

func (c *Conversation) Reset() {
	*c = Conversation{}
}

// Commit moves a complete draft into the cart and clears the draft. An
// incomplete draft is dropped and reported through the returned error.
func (c *Conversation) Commit() error {
	if c.Current.Empty() {
		return nil
	}
	item, err := model.NewLineItem(c.Current.Flavour, c.Current.Quantity)
	c.Current = Draft{}
	if err != nil {
		return err
	}
	c.Cart = append(c.Cart, item)
	return nil
}

func (c *Conversation) empty() bool {
	return len(c.Cart) == 0 && c.Current.Empty()
}

type entry struct {
	mu   sync.Mutex
	conv Conversation
	refs int
}

// Store serializes work per user: callers for the same user queue on that
// user's lock, callers for different users do not block each other.
type Store struct {
	mu    sync.Mutex
	users map[string]*entry
}

func NewStore() *Store {
	return &Store{users: make(map[string]*entry)}
}

// With runs fn on the conversation of user while holding the user's lock.
func (s *Store) With(user string, fn func(conv *Conversation)) {
	s.mu.Lock()
	e, ok := s.users[user]
	if !ok {
		e = &entry{}
		s.users[user] = e
	}
	e.refs++
	s.mu.Unlock()

	defer s.release(user, e)

	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.conv)
}

func (s *Store) release(user string, e *entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.refs--
	if e.refs == 0 && e.conv.empty() {
		delete(s.users, user)
	}
}

// Get returns a copy of the user's conversation.
func (s *Store) Get(user string) (Conversation, bool) {
	var (
		conv  Conversation
		found bool
	)
	s.With(user, func(c *Conversation) {
		found = !c.empty()
		conv = Conversation{
			Cart:    append([]model.LineItem(nil), c.Cart...),
			Current: c.Current,
		}
	})
	return conv, found
}

// Len is the number of users with a non-empty conversation.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}
