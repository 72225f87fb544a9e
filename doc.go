// Package csvsearch loads tabular files (CSV, TSV, LTSV, Parquet and Excel
// XLSX, optionally compressed with gzip, bzip2, xz or zstandard) into an
// embedded SQLite database and runs ad-hoc SQL against them, either
// interactively or as a batch of statements.
//
// # Statements
//
// Input is split on ";" into statements. Each statement is either a
// meta-command or SQL handed to the engine:
//
//	quit | exit | q             leave the session
//	help | h                    print the usage banner
//	clear                       clear the screen
//	version                     print the program version
//	tables                      list relations
//	columns <name>              describe a relation
//	import <path> [as <name>]   load a file as a relation
//
// SQL may carry an output directive after ">>":
//
//	select * from users               render a table on screen
//	select * from users >> !          run and discard the result
//	select * from users >> out.csv    write the result to out.csv
//	select * from users >>            write CSV to standard output
//
// # Library usage
//
//	db, err := csvsearch.OpenDatabase(":memory:")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	s := csvsearch.NewSession(db, csvsearch.WithOutput(os.Stdout, os.Stderr))
//	if _, err := s.Loader().LoadFile(ctx, "users.csv", csvsearch.LoadOptions{}); err != nil {
//	    log.Fatal(err)
//	}
//	s.RunBatch(ctx, "select count(*) from users; tables")
package csvsearch
