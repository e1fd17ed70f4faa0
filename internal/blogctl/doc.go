// Package blogctl implements the blog administration tool.
//
// Commands:
//
//	migrate       apply pending database migrations
//	create-user   register an account interactively; the first account
//	              created on an empty database gets id 1 and is the admin
//	help          print usage
//
// The database is selected with the same -t/-d flags, DATABASE_DRIVER and
// DATABASE_URL variables and config file the server reads.
package blogctl
