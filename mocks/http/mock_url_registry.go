package http

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
	entity "github.com/vadimbarashkov/shortlinks/internal/entity"
)

// MockUrlRegistry is a mock type for the urlRegistry type
type MockUrlRegistry struct {
	mock.Mock
}

// CreateBatch provides a mock function with given fields: ctx, subs
func (_m *MockUrlRegistry) CreateBatch(ctx context.Context, subs []entity.Submission) ([]entity.URLRecord, error) {
	ret := _m.Called(ctx, subs)

	if len(ret) == 0 {
		panic("no return value specified for CreateBatch")
	}

	var r0 []entity.URLRecord
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, []entity.Submission) ([]entity.URLRecord, error)); ok {
		return rf(ctx, subs)
	}
	if rf, ok := ret.Get(0).(func(context.Context, []entity.Submission) []entity.URLRecord); ok {
		r0 = rf(ctx, subs)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]entity.URLRecord)
	}

	if rf, ok := ret.Get(1).(func(context.Context, []entity.Submission) error); ok {
		r1 = rf(ctx, subs)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Delete provides a mock function with given fields: ctx, id
func (_m *MockUrlRegistry) Delete(ctx context.Context, id string) {
	_m.Called(ctx, id)
}

// Get provides a mock function with given fields: ctx, shortCode
func (_m *MockUrlRegistry) Get(ctx context.Context, shortCode string) (entity.URLRecord, error) {
	ret := _m.Called(ctx, shortCode)

	if len(ret) == 0 {
		panic("no return value specified for Get")
	}

	var r0 entity.URLRecord
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (entity.URLRecord, error)); ok {
		return rf(ctx, shortCode)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) entity.URLRecord); ok {
		r0 = rf(ctx, shortCode)
	} else {
		r0 = ret.Get(0).(entity.URLRecord)
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, shortCode)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// List provides a mock function with given fields: ctx
func (_m *MockUrlRegistry) List(ctx context.Context) []entity.URLRecord {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for List")
	}

	var r0 []entity.URLRecord
	if rf, ok := ret.Get(0).(func(context.Context) []entity.URLRecord); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]entity.URLRecord)
	}

	return r0
}

// ListActive provides a mock function with given fields: ctx
func (_m *MockUrlRegistry) ListActive(ctx context.Context) []entity.URLRecord {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for ListActive")
	}

	var r0 []entity.URLRecord
	if rf, ok := ret.Get(0).(func(context.Context) []entity.URLRecord); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]entity.URLRecord)
	}

	return r0
}

// Resolve provides a mock function with given fields: ctx, shortCode, visit
func (_m *MockUrlRegistry) Resolve(ctx context.Context, shortCode string, visit entity.Visit) (string, error) {
	ret := _m.Called(ctx, shortCode, visit)

	if len(ret) == 0 {
		panic("no return value specified for Resolve")
	}

	var r0 string
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, entity.Visit) (string, error)); ok {
		return rf(ctx, shortCode, visit)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, entity.Visit) string); ok {
		r0 = rf(ctx, shortCode, visit)
	} else {
		r0 = ret.Get(0).(string)
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, entity.Visit) error); ok {
		r1 = rf(ctx, shortCode, visit)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Stats provides a mock function with given fields: ctx
func (_m *MockUrlRegistry) Stats(ctx context.Context) entity.Stats {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Stats")
	}

	var r0 entity.Stats
	if rf, ok := ret.Get(0).(func(context.Context) entity.Stats); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Get(0).(entity.Stats)
	}

	return r0
}

// NewMockUrlRegistry creates a new instance of MockUrlRegistry. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockUrlRegistry(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUrlRegistry {
	m := &MockUrlRegistry{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
