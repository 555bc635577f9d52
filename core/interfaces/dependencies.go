// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for dependencies required by the core business logic

package interfaces

// Dependencies holds all external dependencies required by the core business logic
type Dependencies struct {
	// Cache provides transient key-value caching
	Cache Cache

	// Store provides durable key-value storage for view state and auth data.
	// May be nil in non-interactive contexts, in which case persistence is
	// skipped entirely.
	Store Cache

	// HTTPClient provides HTTP request functionality
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger
}
