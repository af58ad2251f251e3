// Package app assembles the dashboard service: configuration, logging,
// metrics, the dataset snapshot, the service layer and the chi router,
// plus the HTTP server lifecycle with graceful shutdown.
package app
