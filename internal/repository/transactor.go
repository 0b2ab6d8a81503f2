package repository

import "gorm.io/gorm"

// TxRepositories adalah repository yang terikat ke satu transaksi.
type TxRepositories struct {
	TPS   TPSRepository
	Suara SuaraRepository
}

type Transactor interface {
	// WithinTransaction menjalankan fn dalam satu transaksi database.
	// Commit jika fn mengembalikan nil, rollback jika error.
	WithinTransaction(fn func(r TxRepositories) error) error
}

type transactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) Transactor {
	return &transactor{db}
}

func (t *transactor) WithinTransaction(fn func(r TxRepositories) error) error {
	return t.db.Transaction(func(tx *gorm.DB) error {
		return fn(TxRepositories{
			TPS:   NewTPSRepository(tx),
			Suara: NewSuaraRepository(tx),
		})
	})
}
