/*
Package x contains the extensions that make up the escrow application.

Extensions implement common functionality (Handler, Decorator,
Authenticator) and are combined together in cmd/pactd to construct the
application. The escrow extension depends on the ledger only through an
interface, so any other bookkeeping extension may be plugged in.
*/
package x
