// Package api is a thin client for the composition service's REST API.
//
// Only three endpoints are used: fetching the composition, probing a single
// clip slot and connecting a clip. Requests are traced and logged but never
// retried.
package api
