// Package memstore implementa los puertos de persistencia en memoria.
// Se usa en tests y con STORE_DRIVER=memory. Todas las operaciones se serializan con un
// mutex; Run mantiene el mutex durante toda la transacción y restaura una copia si fn falla.
package memstore

import (
	"context"
	"sync"

	"github.com/jhoicas/stockpro/internal/application/ports"
	"github.com/jhoicas/stockpro/internal/domain/entity"
)

var _ ports.TxRunner = (*Store)(nil)

type state struct {
	users     map[string]*entity.User
	products  map[string]*entity.Product
	movements []*entity.StockMovement
	sales     []*entity.Sale
	activity  []*entity.ActivityLogEntry
}

func newState() *state {
	return &state{
		users:    map[string]*entity.User{},
		products: map[string]*entity.Product{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, u := range s.users {
		c.users[k] = copyUser(u)
	}
	for k, p := range s.products {
		c.products[k] = copyProduct(p)
	}
	c.movements = make([]*entity.StockMovement, len(s.movements))
	for i, m := range s.movements {
		mm := *m
		c.movements[i] = &mm
	}
	c.sales = make([]*entity.Sale, len(s.sales))
	for i, sl := range s.sales {
		c.sales[i] = copySale(sl)
	}
	c.activity = make([]*entity.ActivityLogEntry, len(s.activity))
	for i, a := range s.activity {
		aa := *a
		c.activity[i] = &aa
	}
	return c
}

// Store base de datos en memoria.
type Store struct {
	mu sync.Mutex
	st *state
}

// New crea un store vacío.
func New() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn con repositorios atados a la transacción. Si fn devuelve error el estado
// vuelve a la copia tomada al inicio.
func (s *Store) Run(ctx context.Context, fn func(tx ports.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	b := base{s: s, tx: true}
	err := fn(ports.TxRepos{
		Products:  &ProductRepo{base: b},
		Movements: &MovementRepo{base: b},
		Sales:     &SaleRepo{base: b},
		Activity:  &ActivityRepo{base: b},
		Users:     &UserRepo{base: b},
	})
	if err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// Users repositorio de usuarios fuera de transacción.
func (s *Store) Users() *UserRepo { return &UserRepo{base: base{s: s}} }

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{base: base{s: s}} }

// Movements repositorio del libro de movimientos fuera de transacción.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{base: base{s: s}} }

// Sales repositorio de ventas fuera de transacción.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{base: base{s: s}} }

// Activity repositorio del journal fuera de transacción.
func (s *Store) Activity() *ActivityRepo { return &ActivityRepo{base: base{s: s}} }

// base da acceso al estado; dentro de Run el mutex ya está tomado.
type base struct {
	s  *Store
	tx bool
}

func (b base) do(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !b.tx {
		b.s.mu.Lock()
		defer b.s.mu.Unlock()
	}
	return fn(b.s.st)
}

func copyUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func copyProduct(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}
	c := *p
	if p.Description != nil {
		d := *p.Description
		c.Description = &d
	}
	return &c
}

func copySale(s *entity.Sale) *entity.Sale {
	if s == nil {
		return nil
	}
	c := *s
	c.Items = append([]entity.SaleItem(nil), s.Items...)
	return &c
}
