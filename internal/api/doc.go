// Package api handles the host-facing HTTP surface: the command endpoint that
// triggers answer generation, the settings form, review and note mirroring,
// and task status queries. It translates HTTP concerns to service calls and
// maps service errors to status codes without leaking internal details.
package api
