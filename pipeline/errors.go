package pipeline

import "errors"

var (
	// ErrRepositoriesRequired is returned when a repository is missing.
	ErrRepositoriesRequired = errors.New("status, paper and classification repositories are required")

	// ErrSourceRequired is returned when NewOrchestrator is called without a source.
	ErrSourceRequired = errors.New("paper source is required")

	// ErrDriverRequired is returned when NewOrchestrator is called without a driver.
	ErrDriverRequired = errors.New("classification driver is required")

	// ErrNilChannel is returned when WithChannel is given a nil notifier.
	ErrNilChannel = errors.New("channel notifier must not be nil")
)
