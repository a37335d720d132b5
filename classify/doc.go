// Package classify runs a classifier over batches of papers with
// bounded concurrency.
//
// The Driver caps in-flight classifier calls at the configured ceiling
// using a worker pool, applies a per-call timeout, and returns outcomes
// aligned with the input order. Individual paper failures are tolerated;
// a batch fails as a whole only when it is empty or every paper failed.
//
// # Usage
//
//	driver, err := classify.NewDriver(classifier, config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer driver.Release()
//
//	batch, err := driver.Run(ctx, papers)
//	for _, item := range batch.Items {
//	    if item.Err != nil {
//	        // paper skipped this run
//	    }
//	}
package classify
