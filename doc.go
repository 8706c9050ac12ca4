// Package pogen generates persistent object source files from a relational
// schema catalog.
//
// A Generator reads every table visible through a metadata source and writes
// one Go file per table into the package directory named by a dotted pack:
//
//	src, err := sql.Open("mysql", dsn)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := pogen.New(src).Run(ctx, "com.example.model", "./out"); err != nil {
//	    log.Fatal(err)
//	}
//
// writes ./out/com/example/model/<Table>PO.go for every table. The source is
// closed by the run.
package pogen
