// Package service implements the user account operations behind the HTTP API:
// registration, login, lookups, updates, deletion and the password reset flow.
//
// Services depend only on interfaces (store.UserStore, auth.TokenService,
// auth.PasswordHasher, mail.Sender) and return typed errors; the API layer
// decides how each error is presented to clients.
package service
