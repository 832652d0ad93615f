// Package mocks provides mock implementations of the collaborator interfaces in
// internal/core for testing the job harness.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks.
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	reader := mocks.NewMockConfigReader(ctrl)
//	reader.EXPECT().Read(gomock.Any(), gomock.Any()).Return(config.JobConfig{Name: "backup"}, nil)
package mocks

// Generate mocks for every port in internal/core.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=core_mock.go github.com/dometto/rubycron/internal/core ConfigReader,EnvReader,MailTransport,OutputOpener,ReportRenderer,RunNotifier,TransportProber
