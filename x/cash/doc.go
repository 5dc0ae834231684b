/*
Package cash is the fungible asset ledger. Every account holds a balance
of exactly one ticker and is owned by a single address. Accounts live at
arbitrary addresses: users get the associated account of their address
and ticker, while programs such as escrow open accounts at addresses
derived for them and owned by keyless authorities.

Moving funds out of an account always requires the owner to be
authenticated. There is no logic in the coins themselves except that a
balance may never go below zero or overflow.
*/
package cash
