// Package mocks holds gomock doubles for server interfaces.
//
// Regenerate after interface changes:
//
//	go generate ./internal/mocks
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=users_repository_mock.go github.com/dmitrijs2005/talksy/internal/server/repositories/users Repository
