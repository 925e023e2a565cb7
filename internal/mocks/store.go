package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Pelmenoff/m2-hw12/internal/model"
)

// UserStore is a mock of model.UserStore.
type UserStore struct {
	mock.Mock
}

// NewUserStore creates a UserStore that asserts its expectations on cleanup.
func NewUserStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserStore {
	m := &UserStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	ret := m.Called(ctx, email)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	ret := m.Called(ctx, user)
	return ret.Get(0).(model.User), ret.Error(1)
}

// ContactStore is a mock of model.ContactStore.
type ContactStore struct {
	mock.Mock
}

// NewContactStore creates a ContactStore that asserts its expectations on cleanup.
func NewContactStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *ContactStore {
	m := &ContactStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ContactStore) Create(ctx context.Context, contact model.Contact) (model.Contact, error) {
	ret := m.Called(ctx, contact)
	return ret.Get(0).(model.Contact), ret.Error(1)
}

func (m *ContactStore) GetByID(ctx context.Context, ownerID, id int64) (model.Contact, error) {
	ret := m.Called(ctx, ownerID, id)
	return ret.Get(0).(model.Contact), ret.Error(1)
}

func (m *ContactStore) List(ctx context.Context, ownerID int64, page model.Page) ([]model.Contact, error) {
	ret := m.Called(ctx, ownerID, page)
	return contacts(ret, 0), ret.Error(1)
}

func (m *ContactStore) Update(ctx context.Context, contact model.Contact) (model.Contact, error) {
	ret := m.Called(ctx, contact)
	return ret.Get(0).(model.Contact), ret.Error(1)
}

func (m *ContactStore) Delete(ctx context.Context, ownerID, id int64) (model.Contact, error) {
	ret := m.Called(ctx, ownerID, id)
	return ret.Get(0).(model.Contact), ret.Error(1)
}

func (m *ContactStore) Search(ctx context.Context, ownerID int64, query string, page model.Page) ([]model.Contact, error) {
	ret := m.Called(ctx, ownerID, query, page)
	return contacts(ret, 0), ret.Error(1)
}

func (m *ContactStore) GetByBirthdayRange(ctx context.Context, ownerID int64, from, to model.MonthDay) ([]model.Contact, error) {
	ret := m.Called(ctx, ownerID, from, to)
	return contacts(ret, 0), ret.Error(1)
}

// Transactor is a model.Transactor that runs fn without a transaction.
type Transactor struct {
	Calls int
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

func contacts(ret mock.Arguments, i int) []model.Contact {
	if v := ret.Get(i); v != nil {
		return v.([]model.Contact)
	}
	return nil
}
