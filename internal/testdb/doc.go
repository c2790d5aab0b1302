//go:build integration

// Package testdb provides helpers for tests that run against a real
// PostgreSQL database.
//
// Tests are skipped unless QUIZGEN_TEST_DB_URL or DATABASE_URL is set. The
// schema is brought up with the embedded migrations the first time a test
// asks for a connection. Tests that only read and write through a *sql.Tx
// should use WithTx so their changes are rolled back; tests of code that
// manages its own transactions create rows with InsertDocument and rely on
// the cleanup it registers.
//
//	func TestSession(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    id := testdb.InsertDocument(t, db, "docs/a.txt")
//	    ...
//	}
package testdb
