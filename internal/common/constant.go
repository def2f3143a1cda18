// Package common contains shared constants and sentinel errors used across
// dogshelter components.
package common

// SessionCookieName is the name of the HTTP-only cookie that carries the
// session token between the API and its clients.
const SessionCookieName = "jwt"

// DogsPerPage is the fixed page size of every dog listing.
const DogsPerPage = 5

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8
