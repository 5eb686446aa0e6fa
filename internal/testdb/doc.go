//go:build integration

// Package testdb opens the Postgres database used by integration tests and
// isolates each test in a transaction that is rolled back when it finishes.
//
// The database is located through WALLETUSER_TEST_DATABASE_URL, falling back
// to DATABASE_URL. When neither is set the calling test is skipped, unless the
// CI environment variable is set, in which case it fails.
//
// Basic usage:
//
//	func TestSomething(t *testing.T) {
//		db := testdb.Open(t)
//		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//			users := postgres.NewPostgresUserStore(tx, nil)
//			// ...
//		})
//	}
package testdb
