/*
Package pacttest provides mocks and helpers shared by the tests of all
extensions: authenticators, handlers, decorators, transactions, keys and
stores. It must not be imported by production code.
*/
package pacttest
