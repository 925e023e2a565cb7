package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Pelmenoff/m2-hw12/internal/model"
)

// AuthService is a mock of the auth operations used by the REST layer.
type AuthService struct {
	mock.Mock
}

// NewAuthService creates an AuthService that asserts its expectations on cleanup.
func NewAuthService(t interface {
	mock.TestingT
	Cleanup(func())
}) *AuthService {
	m := &AuthService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *AuthService) Register(ctx context.Context, email, password string) (model.User, error) {
	ret := m.Called(ctx, email, password)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (m *AuthService) Login(ctx context.Context, email, password string) (model.TokenPair, error) {
	ret := m.Called(ctx, email, password)
	return ret.Get(0).(model.TokenPair), ret.Error(1)
}

func (m *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	ret := m.Called(ctx, refreshToken)
	return ret.String(0), ret.Error(1)
}

func (m *AuthService) Authenticate(ctx context.Context, accessToken string) (model.User, error) {
	ret := m.Called(ctx, accessToken)
	return ret.Get(0).(model.User), ret.Error(1)
}

// ContactService is a mock of the contact operations used by the REST layer.
type ContactService struct {
	mock.Mock
}

// NewContactService creates a ContactService that asserts its expectations on cleanup.
func NewContactService(t interface {
	mock.TestingT
	Cleanup(func())
}) *ContactService {
	m := &ContactService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ContactService) Create(ctx context.Context, ownerID int64, params model.ContactParams) (model.Contact, error) {
	ret := m.Called(ctx, ownerID, params)
	return ret.Get(0).(model.Contact), ret.Error(1)
}

func (m *ContactService) List(ctx context.Context, ownerID int64, page model.Page) ([]model.Contact, error) {
	ret := m.Called(ctx, ownerID, page)
	return contacts(ret, 0), ret.Error(1)
}

func (m *ContactService) Get(ctx context.Context, ownerID, id int64) (model.Contact, error) {
	ret := m.Called(ctx, ownerID, id)
	return ret.Get(0).(model.Contact), ret.Error(1)
}

func (m *ContactService) Update(ctx context.Context, ownerID, id int64, params model.ContactParams) (model.Contact, error) {
	ret := m.Called(ctx, ownerID, id, params)
	return ret.Get(0).(model.Contact), ret.Error(1)
}

func (m *ContactService) Delete(ctx context.Context, ownerID, id int64) (model.Contact, error) {
	ret := m.Called(ctx, ownerID, id)
	return ret.Get(0).(model.Contact), ret.Error(1)
}

func (m *ContactService) Search(ctx context.Context, ownerID int64, query string, page model.Page) ([]model.Contact, error) {
	ret := m.Called(ctx, ownerID, query, page)
	return contacts(ret, 0), ret.Error(1)
}

func (m *ContactService) UpcomingBirthdays(ctx context.Context, ownerID int64) ([]model.Contact, error) {
	ret := m.Called(ctx, ownerID)
	return contacts(ret, 0), ret.Error(1)
}
