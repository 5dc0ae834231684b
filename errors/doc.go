/*
Package errors implements the error model shared by every pact extension.

Root errors are registered once with a unique code (see Register) and every
runtime error should wrap one of them, so that clients can tell the
category of a failure by its ABCI code:

	validation    ErrInput, ErrMsg, ErrModel, ErrAmount, ErrCurrency
	authorization ErrUnauthorized
	state         ErrNotFound, ErrDuplicate, ErrState
	ledger        ErrAmount, ErrNotFound, ErrOverflow

Create errors with ErrXyz.New/Newf or Wrap/Wrapf at the point of failure so
that a stack trace is attached once, at the lowest frame. Format an error
with %+v to print that trace.

Test the category with the root error Is method:

	if errors.ErrNotFound.Is(err) { ... }
*/
package errors
