// Package server hosts the localhost HTTP endpoint the OAuth redirect
// lands on.
//
// During login a temporary server starts on the configured host/port,
// [CallbackHandler] receives /callback exactly once, hands the code (or
// the provider's error) to the session, reports the outcome on a one-shot
// channel, and the server shuts down. The single-hit guard means a
// replayed or refreshed redirect cannot re-enter the token exchange.
package server
