// Package mocks holds testify mocks for the ports interfaces, written in
// mockery's expecter layout (see .mockery.yaml).
package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"

	"github.com/jsamuelsen/quote-service/internal/domain"
)

// MockQuoteDriver is a mock implementation of ports.QuoteDriver.
type MockQuoteDriver struct {
	mock.Mock
}

// MockQuoteDriver_Expecter provides typed expectation helpers.
type MockQuoteDriver_Expecter struct {
	mock *mock.Mock
}

// EXPECT returns the typed expecter.
func (_m *MockQuoteDriver) EXPECT() *MockQuoteDriver_Expecter {
	return &MockQuoteDriver_Expecter{mock: &_m.Mock}
}

// NewMockQuoteDriver creates a new MockQuoteDriver and registers cleanup
// that asserts all expectations were met.
func NewMockQuoteDriver(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockQuoteDriver {
	m := &MockQuoteDriver{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Kind provides a mock function.
func (_m *MockQuoteDriver) Kind() domain.BackendKind {
	ret := _m.Called()

	if rf, ok := ret.Get(0).(func() domain.BackendKind); ok {
		return rf()
	}

	return ret.Get(0).(domain.BackendKind)
}

// MockQuoteDriver_Kind_Call wraps mock.Call for Kind.
type MockQuoteDriver_Kind_Call struct {
	*mock.Call
}

// Kind is a helper method to define mock.On call.
func (_e *MockQuoteDriver_Expecter) Kind() *MockQuoteDriver_Kind_Call {
	return &MockQuoteDriver_Kind_Call{Call: _e.mock.On("Kind")}
}

// Return sets the return values.
func (_c *MockQuoteDriver_Kind_Call) Return(kind domain.BackendKind) *MockQuoteDriver_Kind_Call {
	_c.Call.Return(kind)
	return _c
}

// Connected provides a mock function.
func (_m *MockQuoteDriver) Connected() bool {
	ret := _m.Called()

	if rf, ok := ret.Get(0).(func() bool); ok {
		return rf()
	}

	return ret.Bool(0)
}

// MockQuoteDriver_Connected_Call wraps mock.Call for Connected.
type MockQuoteDriver_Connected_Call struct {
	*mock.Call
}

// Connected is a helper method to define mock.On call.
func (_e *MockQuoteDriver_Expecter) Connected() *MockQuoteDriver_Connected_Call {
	return &MockQuoteDriver_Connected_Call{Call: _e.mock.On("Connected")}
}

// Return sets the return values.
func (_c *MockQuoteDriver_Connected_Call) Return(connected bool) *MockQuoteDriver_Connected_Call {
	_c.Call.Return(connected)
	return _c
}

// Count provides a mock function.
func (_m *MockQuoteDriver) Count(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)

	if rf, ok := ret.Get(0).(func(context.Context) (int64, error)); ok {
		return rf(ctx)
	}

	return ret.Get(0).(int64), ret.Error(1)
}

// MockQuoteDriver_Count_Call wraps mock.Call for Count.
type MockQuoteDriver_Count_Call struct {
	*mock.Call
}

// Count is a helper method to define mock.On call.
func (_e *MockQuoteDriver_Expecter) Count(ctx interface{}) *MockQuoteDriver_Count_Call {
	return &MockQuoteDriver_Count_Call{Call: _e.mock.On("Count", ctx)}
}

// Return sets the return values.
func (_c *MockQuoteDriver_Count_Call) Return(n int64, err error) *MockQuoteDriver_Count_Call {
	_c.Call.Return(n, err)
	return _c
}

// Save provides a mock function.
func (_m *MockQuoteDriver) Save(ctx context.Context, q *domain.Quote) (*domain.Quote, error) {
	ret := _m.Called(ctx, q)

	if rf, ok := ret.Get(0).(func(context.Context, *domain.Quote) (*domain.Quote, error)); ok {
		return rf(ctx, q)
	}

	var r0 *domain.Quote
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Quote)
	}

	return r0, ret.Error(1)
}

// MockQuoteDriver_Save_Call wraps mock.Call for Save.
type MockQuoteDriver_Save_Call struct {
	*mock.Call
}

// Save is a helper method to define mock.On call.
func (_e *MockQuoteDriver_Expecter) Save(ctx interface{}, q interface{}) *MockQuoteDriver_Save_Call {
	return &MockQuoteDriver_Save_Call{Call: _e.mock.On("Save", ctx, q)}
}

// Return sets the return values.
func (_c *MockQuoteDriver_Save_Call) Return(saved *domain.Quote, err error) *MockQuoteDriver_Save_Call {
	_c.Call.Return(saved, err)
	return _c
}

// RunAndReturn sets a function computing the return values.
func (_c *MockQuoteDriver_Save_Call) RunAndReturn(
	run func(context.Context, *domain.Quote) (*domain.Quote, error),
) *MockQuoteDriver_Save_Call {
	_c.Call.Return(run)
	return _c
}

// FindAll provides a mock function.
func (_m *MockQuoteDriver) FindAll(ctx context.Context) ([]*domain.Quote, error) {
	ret := _m.Called(ctx)

	if rf, ok := ret.Get(0).(func(context.Context) ([]*domain.Quote, error)); ok {
		return rf(ctx)
	}

	var r0 []*domain.Quote
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*domain.Quote)
	}

	return r0, ret.Error(1)
}

// MockQuoteDriver_FindAll_Call wraps mock.Call for FindAll.
type MockQuoteDriver_FindAll_Call struct {
	*mock.Call
}

// FindAll is a helper method to define mock.On call.
func (_e *MockQuoteDriver_Expecter) FindAll(ctx interface{}) *MockQuoteDriver_FindAll_Call {
	return &MockQuoteDriver_FindAll_Call{Call: _e.mock.On("FindAll", ctx)}
}

// Return sets the return values.
func (_c *MockQuoteDriver_FindAll_Call) Return(quotes []*domain.Quote, err error) *MockQuoteDriver_FindAll_Call {
	_c.Call.Return(quotes, err)
	return _c
}

// FindLatest provides a mock function.
func (_m *MockQuoteDriver) FindLatest(ctx context.Context) (*domain.Quote, error) {
	ret := _m.Called(ctx)

	if rf, ok := ret.Get(0).(func(context.Context) (*domain.Quote, error)); ok {
		return rf(ctx)
	}

	var r0 *domain.Quote
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Quote)
	}

	return r0, ret.Error(1)
}

// MockQuoteDriver_FindLatest_Call wraps mock.Call for FindLatest.
type MockQuoteDriver_FindLatest_Call struct {
	*mock.Call
}

// FindLatest is a helper method to define mock.On call.
func (_e *MockQuoteDriver_Expecter) FindLatest(ctx interface{}) *MockQuoteDriver_FindLatest_Call {
	return &MockQuoteDriver_FindLatest_Call{Call: _e.mock.On("FindLatest", ctx)}
}

// Return sets the return values.
func (_c *MockQuoteDriver_FindLatest_Call) Return(latest *domain.Quote, err error) *MockQuoteDriver_FindLatest_Call {
	_c.Call.Return(latest, err)
	return _c
}

// Delete provides a mock function.
func (_m *MockQuoteDriver) Delete(ctx context.Context, id domain.QuoteID) error {
	ret := _m.Called(ctx, id)

	if rf, ok := ret.Get(0).(func(context.Context, domain.QuoteID) error); ok {
		return rf(ctx, id)
	}

	return ret.Error(0)
}

// MockQuoteDriver_Delete_Call wraps mock.Call for Delete.
type MockQuoteDriver_Delete_Call struct {
	*mock.Call
}

// Delete is a helper method to define mock.On call.
func (_e *MockQuoteDriver_Expecter) Delete(ctx interface{}, id interface{}) *MockQuoteDriver_Delete_Call {
	return &MockQuoteDriver_Delete_Call{Call: _e.mock.On("Delete", ctx, id)}
}

// Return sets the return values.
func (_c *MockQuoteDriver_Delete_Call) Return(err error) *MockQuoteDriver_Delete_Call {
	_c.Call.Return(err)
	return _c
}

// ParseID provides a mock function.
func (_m *MockQuoteDriver) ParseID(raw string) (domain.QuoteID, error) {
	ret := _m.Called(raw)

	if rf, ok := ret.Get(0).(func(string) (domain.QuoteID, error)); ok {
		return rf(raw)
	}

	return ret.Get(0).(domain.QuoteID), ret.Error(1)
}

// MockQuoteDriver_ParseID_Call wraps mock.Call for ParseID.
type MockQuoteDriver_ParseID_Call struct {
	*mock.Call
}

// ParseID is a helper method to define mock.On call.
func (_e *MockQuoteDriver_Expecter) ParseID(raw interface{}) *MockQuoteDriver_ParseID_Call {
	return &MockQuoteDriver_ParseID_Call{Call: _e.mock.On("ParseID", raw)}
}

// Return sets the return values.
func (_c *MockQuoteDriver_ParseID_Call) Return(id domain.QuoteID, err error) *MockQuoteDriver_ParseID_Call {
	_c.Call.Return(id, err)
	return _c
}
