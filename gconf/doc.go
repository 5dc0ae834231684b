/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each extension keeps at most one configuration object, stored under the
"_c:<package name>" key. A configuration is loaded from the genesis file
"conf" section and can later be changed by its owner with an update
message processed by UpdateConfigurationHandler.
*/
package gconf
