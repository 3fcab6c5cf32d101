//go:build !cgo

package sqlstore

// go-sqlite3 needs cgo; without it no sqlite errors can occur.

func isSQLiteUnique(error) bool     { return false }
func isSQLiteForeignKey(error) bool { return false }
