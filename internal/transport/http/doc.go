// Package http contains the HTTP transport layer: the scan upload
// endpoint that turns two bhav copy archives into a downloadable report
// workbook, and a liveness endpoint.
//
// Handlers follow a consistent shape: a struct holding collaborators and
// a logger, a RegisterRoutes method attaching routes to a chi router, and
// centralized error responses through the errors.ErrorHandler.
package http
