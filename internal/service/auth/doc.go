// Package auth holds the credential utilities: bcrypt password hashing and
// HMAC-signed JWTs for two audiences (user and admin) and two purposes
// (access and password reset).
package auth
