// Package api handles incoming HTTP requests, request validation and response
// formatting. Every response, success or failure, is a shared.Envelope; errors
// from the service layer are translated to envelopes in one place
// (envelopeForError) so raw internals never reach clients.
package api
