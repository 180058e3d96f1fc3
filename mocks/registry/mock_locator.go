package registry

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
	entity "github.com/vadimbarashkov/shortlinks/internal/entity"
)

// MockLocator is a mock type for the locator type
type MockLocator struct {
	mock.Mock
}

// Locate provides a mock function with given fields: ctx, ip
func (_m *MockLocator) Locate(ctx context.Context, ip string) (entity.Location, error) {
	ret := _m.Called(ctx, ip)

	if len(ret) == 0 {
		panic("no return value specified for Locate")
	}

	var r0 entity.Location
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (entity.Location, error)); ok {
		return rf(ctx, ip)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) entity.Location); ok {
		r0 = rf(ctx, ip)
	} else {
		r0 = ret.Get(0).(entity.Location)
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, ip)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockLocator creates a new instance of MockLocator. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockLocator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLocator {
	m := &MockLocator{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
