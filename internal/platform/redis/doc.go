// Package redis provides a document-store implementation of store.UserStore on
// top of Redis. Each user is one JSON document; email and wallet address lookups
// go through index keys, and a sorted set keeps creation order for listing.
//
// Uniqueness is enforced with optimistic transactions: every write WATCHes the
// document and index keys it depends on and retries when another client wins
// the race.
package redis
