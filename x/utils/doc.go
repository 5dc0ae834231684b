/*
Package utils holds the decorators every transaction passes through
before reaching an extension handler: panic recovery, logging, result
tagging and savepoints that make a handler all-or-nothing.
*/
package utils
