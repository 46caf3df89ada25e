// Package webform provides the net/http surface of the numerology app: the
// input form, the result page (HTML or JSON), the grid re-annotation endpoint
// used by the page script and the embedded static assets.
//
// Routes are mounted relative to a base path with RegisterRoutes; Handler
// returns a single handler that dispatches all of them.
package webform
