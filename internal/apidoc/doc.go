// Package apidoc builds the Swagger 2.0 description of the forecast API, splits it into one
// document per API version and serves those documents together with the interactive UI.
//
// Documents are built and filtered once at startup; after NewRegistry returns, a Registry is
// read-only and safe for concurrent use.
package apidoc
