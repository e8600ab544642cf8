// Package repository implements the data access layer over MySQL. The
// sentinel errors defined here let handlers map failure scenarios to HTTP
// status codes without inspecting driver error strings themselves.
package repository

import "errors"

// ErrNotFound is returned when the targeted row does not exist. Handlers
// translate it into a 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when registration hits the unique email
// constraint. Handlers translate it into a 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrInvalidRole is returned when a registration names a role with no row
// in the roles table. Handlers translate it into a 400 response.
var ErrInvalidRole = errors.New("invalid role")
