// Package postgres provides the PostgreSQL implementation of store.UserStore.
// It handles query execution, mapping between domain entities and rows, mapping
// driver errors onto the store error taxonomy, and the embedded goose migrations
// that create the schema it relies on.
package postgres
