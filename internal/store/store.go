package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/iurnickita/swadbot/internal/model"
	"github.com/iurnickita/swadbot/internal/store/config"
)

type Store interface {
	OrdersPost(ctx context.Context, userNumber string, items []model.LineItem) (int, error)
	OrdersGet(ctx context.Context) ([]model.Order, error)
	Close() error
}

var ErrUnknownDriver = errors.New("unknown database driver")

// Таблица заказов. Одна строка на позицию корзины, строки не меняются и не удаляются
var schema = map[string]string{
	config.DriverSQLite: "CREATE TABLE IF NOT EXISTS orders (" +
		" id INTEGER PRIMARY KEY AUTOINCREMENT," +
		" user_number TEXT NOT NULL," +
		" flavour TEXT NOT NULL," +
		" quantity TEXT NOT NULL" +
		" );",
	config.DriverPostgres: "CREATE TABLE IF NOT EXISTS orders (" +
		" id SERIAL PRIMARY KEY," +
		" user_number VARCHAR (32) NOT NULL," +
		" flavour VARCHAR (32) NOT NULL," +
		" quantity VARCHAR (16) NOT NULL" +
		" );",
}

type store struct {
	database *sqlx.DB
}

func NewStore(cfg config.Config) (Store, error) {
	ddl, ok := schema[cfg.Driver]
	if !ok {
		return nil, errors.Wrap(ErrUnknownDriver, cfg.Driver)
	}

	db, err := sqlx.Open(cfg.Driver, cfg.DBDsn)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	// SQLite допускает одного писателя
	if cfg.Driver == config.DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	if _, err = db.Exec(ddl); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create orders table")
	}

	return newStore(db), nil
}

func newStore(db *sqlx.DB) *store {
	return &store{database: db}
}

// OrdersPost writes one row per item inside a single transaction.
func (store *store) OrdersPost(ctx context.Context, userNumber string, items []model.LineItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	tx, err := store.database.BeginTxx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "begin transaction")
	}

	query := store.database.Rebind(
		"INSERT INTO orders (user_number, flavour, quantity)" +
			" VALUES (?, ?, ?)")
	for _, item := range items {
		_, err = tx.ExecContext(ctx, query,
			userNumber,
			item.Flavour(),
			item.Quantity())
		if err != nil {
			tx.Rollback()
			return 0, errors.Wrap(err, "insert order")
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "commit orders")
	}
	return len(items), nil
}

func (store *store) OrdersGet(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := store.database.SelectContext(ctx, &orders,
		"SELECT id, user_number, flavour, quantity"+
			" FROM orders"+
			" ORDER BY id")
	if err != nil {
		return nil, errors.Wrap(err, "select orders")
	}
	return orders, nil
}

func (store *store) Close() error {
	return store.database.Close()
}
