/*
Package pact defines the interfaces shared by every part of the swap
escrow application: storage, transactions, handlers, queries and the
derivation of keyless addresses. Extensions live under x/ and are wired
together by the app package.

Funds of an open escrow are held by a derived address. A derived address
is a hash of a condition that has no private key, so the only way to move
funds owned by it is through the handler that knows how to rebuild it.
*/
package pact
