// Package serve provides the thin transport plumbing around a dispatch
// application: a YAML-loadable server configuration and an HTTP server
// wrapper with a concurrent-connection cap and graceful shutdown.
//
// The dispatch engine itself never owns a socket; this package is the
// collaborator that does:
//
//	cfg, err := serve.LoadConfig("relay.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	srv, err := serve.NewServer(cfg, app)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
//	    log.Fatal(err)
//	}
package serve
