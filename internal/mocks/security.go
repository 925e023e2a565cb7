package mocks

import (
	"net"

	"github.com/stretchr/testify/mock"

	"github.com/Pelmenoff/m2-hw12/internal/model"
)

// PasswordHasher is a mock of model.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

// NewPasswordHasher creates a PasswordHasher that asserts its expectations on cleanup.
func NewPasswordHasher(t interface {
	mock.TestingT
	Cleanup(func())
}) *PasswordHasher {
	m := &PasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *PasswordHasher) Hash(password string) (string, error) {
	ret := m.Called(password)
	return ret.String(0), ret.Error(1)
}

func (m *PasswordHasher) Verify(password, hashed string) bool {
	ret := m.Called(password, hashed)
	return ret.Bool(0)
}

// TokenManager is a mock of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

// NewTokenManager creates a TokenManager that asserts its expectations on cleanup.
func NewTokenManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenManager {
	m := &TokenManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TokenManager) GenerateAccessToken(subject string) (string, error) {
	ret := m.Called(subject)
	return ret.String(0), ret.Error(1)
}

func (m *TokenManager) GenerateRefreshToken(subject string) (string, error) {
	ret := m.Called(subject)
	return ret.String(0), ret.Error(1)
}

func (m *TokenManager) Verify(token string) (model.Claims, error) {
	ret := m.Called(token)
	return ret.Get(0).(model.Claims), ret.Error(1)
}

func (m *TokenManager) ParseAccessToken(token string) (model.Claims, error) {
	ret := m.Called(token)
	return ret.Get(0).(model.Claims), ret.Error(1)
}

func (m *TokenManager) ParseRefreshToken(token string) (model.Claims, error) {
	ret := m.Called(token)
	return ret.Get(0).(model.Claims), ret.Error(1)
}

// SecurityLayer is a mock of model.SecurityLayer.
type SecurityLayer struct {
	mock.Mock
}

// NewSecurityLayer creates a SecurityLayer that asserts its expectations on cleanup.
func NewSecurityLayer(t interface {
	mock.TestingT
	Cleanup(func())
}) *SecurityLayer {
	m := &SecurityLayer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SecurityLayer) Listen(network, addr string) (net.Listener, error) {
	ret := m.Called(network, addr)
	var ln net.Listener
	if v := ret.Get(0); v != nil {
		ln = v.(net.Listener)
	}
	return ln, ret.Error(1)
}
