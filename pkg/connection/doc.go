// Package connection keeps a single outbound connection alive.
//
// A Manager owns one goroutine that repeatedly asks a Transport to connect
// to a fixed Target, then sleeps until the connection drops. The Transport
// reports outcomes asynchronously through an EventSink; the shared State
// turns those events into a blocking wait API for the rest of the program.
//
// # Retry Pacing
//
// Attempts are spaced by a fixed retry interval measured from the start of
// the previous attempt:
//
//	attempt fails after 50ms, interval 10s  -> next attempt 10s after the first
//	connection held for 5m, interval 10s    -> next attempt immediately
//
// There is no backoff growth and no attempt limit. Failures are logged and
// retried until the Manager is closed.
//
// # Waiting
//
// WaitForConnection blocks until the connection is up, the deadline passes,
// the caller's context is done or the Manager is closed:
//
//	mgr := connection.NewManager(connection.Config{Logger: slog.Default()})
//	mgr.Start(comm, connection.DefaultTarget("db.internal:38040"))
//	defer mgr.Close()
//
//	if !mgr.WaitForConnection(ctx, 30*time.Second) {
//	    return errors.New("master not reachable")
//	}
package connection
