package cash

import (
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/gconf"
	"github.com/iov-one/pact/x"
)

const (
	sendCost          int64 = 100
	createAccountCost int64 = 200
	mintCost          int64 = 100
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r pact.Registry, auth x.Authenticator, control Controller) {
	r.Handle(SendMsg{}.Path(), NewSendHandler(auth, control))
	r.Handle(CreateAccountMsg{}.Path(), NewCreateAccountHandler(auth, control))
	r.Handle(MintMsg{}.Path(), NewMintHandler(auth, control))
	r.Handle(UpdateConfigurationMsg{}.Path(), NewConfigHandler(auth))
}

// RegisterQuery will register the accounts as "/accounts" and the owner
// index as "/accounts/owner".
func RegisterQuery(qr pact.QueryRouter) {
	NewAccountBucket().Register("accounts", qr)
}

// SendHandler will handle sending coins.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ pact.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg.
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check verifies the message is properly formed and returns the cost of
// executing it. Funds are checked in Deliver.
func (h SendHandler) Check(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.CheckResult, error) {
	var msg SendMsg
	if err := pact.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &pact.CheckResult{GasAllocated: sendCost}, nil
}

// Deliver moves the coins if the source account owner signed.
func (h SendHandler) Deliver(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.DeliverResult, error) {
	var msg SendMsg
	if err := pact.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.control.Transfer(ctx, db, msg.Source, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	return &pact.DeliverResult{}, nil
}

// CreateAccountHandler opens associated accounts.
type CreateAccountHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ pact.Handler = CreateAccountHandler{}

func NewCreateAccountHandler(auth x.Authenticator, control Controller) CreateAccountHandler {
	return CreateAccountHandler{auth: auth, control: control}
}

func (h CreateAccountHandler) Check(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &pact.CheckResult{GasAllocated: createAccountCost}, nil
}

// Deliver creates the account and returns its address as the result data.
func (h CreateAccountHandler) Deliver(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	addr, err := AssociatedAddress(owner, msg.Ticker)
	if err != nil {
		return nil, err
	}
	if _, err := h.control.CreateAccount(db, addr, owner, msg.Ticker); err != nil {
		return nil, err
	}
	return &pact.DeliverResult{Data: addr}, nil
}

func (h CreateAccountHandler) validate(ctx pact.Context, tx pact.Tx) (*CreateAccountMsg, pact.Address, error) {
	var msg CreateAccountMsg
	if err := pact.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner := msg.Owner
	if len(owner) == 0 {
		signer := x.MainSigner(ctx, h.auth)
		if signer == nil {
			return nil, nil, errors.Wrap(errors.ErrUnauthorized, "owner required")
		}
		owner = signer.Address()
	}
	return &msg, owner, nil
}

// MintHandler issues new coins. Only the configured minter can use it.
type MintHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ pact.Handler = MintHandler{}

func NewMintHandler(auth x.Authenticator, control Controller) MintHandler {
	return MintHandler{auth: auth, control: control}
}

func (h MintHandler) Check(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &pact.CheckResult{GasAllocated: mintCost}, nil
}

func (h MintHandler) Deliver(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Mint(db, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	return &pact.DeliverResult{}, nil
}

func (h MintHandler) validate(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*MintMsg, error) {
	var msg MintMsg
	if err := pact.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Minter) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "minter signature required")
	}
	return &msg, nil
}

// NewConfigHandler returns a handler that applies configuration patches
// signed by the configuration owner.
func NewConfigHandler(auth x.Authenticator) pact.Handler {
	var conf Configuration
	return gconf.NewUpdateConfigurationHandler(confPkg, &conf, auth, nil)
}
