// Package store defines the persistence abstractions the service layer depends on,
// together with the error taxonomy every implementation maps its failures onto.
// Concrete implementations live under internal/platform.
package store
