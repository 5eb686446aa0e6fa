// Package mocks provides testify mock implementations of the interfaces the
// service layer depends on, so handler and service tests share one set of fakes.
//
// Usage:
//
//	users := new(mocks.UserStore)
//	users.On("GetByID", mock.Anything, id).Return(user, nil)
//	svc := service.NewUserService(users, hasher, tokens, new(mocks.MailSender), logger)
package mocks
