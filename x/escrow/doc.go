/*
Package escrow implements a two-party swap escrow with keyless custody.

An initializer locks an amount of one asset and declares the amount of a
second asset wanted in return. Any taker can fulfil the exchange: the taker
pays the initializer and receives the locked funds in a single transaction.
Until that happens the initializer can cancel and get the deposit back.

Locked funds are held in a vault account owned by the custody authority, an
address derived by this package that no private key controls. Only the
escrow handlers can act on behalf of the authority, by placing its
condition in the context passed to the ledger. Escrow records are stored
under their derived address, so escrows with different seeds never share
state.
*/
package escrow
