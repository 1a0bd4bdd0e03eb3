// Package mocks provides centralized mock implementations for testing.
//
// Mocks embed testify's mock.Mock, so expectations are declared with On and
// verified with AssertExpectations or AssertNotCalled:
//
//	repo := &mocks.TestifyMockPatientStore{}
//	repo.On("FindByNameOrEmail", mock.Anything, "Ana", "", "user-1").
//	    Return(nil, store.ErrPatientNotFound)
//
// When adding a new mock to this package, name the file after the interface
// being mocked.
package mocks
