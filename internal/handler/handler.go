// Package handler is the entry point for business logic after the
// router. It binds and validates requests via the validation package,
// calls the appropriate service, and writes the response.
package handler
