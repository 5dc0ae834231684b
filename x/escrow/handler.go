package escrow

import (
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/coin"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/gconf"
	"github.com/iov-one/pact/orm"
	"github.com/iov-one/pact/x"
	"github.com/iov-one/pact/x/cash"
)

const (
	initializeCost int64 = 300
	exchangeCost   int64 = 300
	cancelCost     int64 = 100
)

// RegisterRoutes will instantiate and register all handlers in this
// package. The ledger must authenticate with a chain that includes
// Authenticate, otherwise vault funds cannot be moved.
func RegisterRoutes(r pact.Registry, auth x.Authenticator, ledger Ledger) {
	bucket := NewBucket()
	r.Handle(pathInitializeMsg, InitializeHandler{auth: auth, bucket: bucket, ledger: ledger})
	r.Handle(pathExchangeMsg, ExchangeHandler{auth: auth, bucket: bucket, ledger: ledger})
	r.Handle(pathCancelMsg, CancelHandler{auth: auth, bucket: bucket, ledger: ledger})
	r.Handle(pathUpdateConfigurationMsg, NewConfigHandler(auth))
}

// RegisterQuery will register escrows as "/escrows" and the initializer
// index as "/escrows/initializer".
func RegisterQuery(qr pact.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

// NewConfigHandler returns a handler that applies configuration patches
// signed by the configuration owner.
func NewConfigHandler(auth x.Authenticator) pact.Handler {
	var conf Configuration
	return gconf.NewUpdateConfigurationHandler(confPkg, &conf, auth, nil)
}

// InitializeHandler opens escrows.
type InitializeHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	ledger Ledger
}

var _ pact.Handler = InitializeHandler{}

// initialization is a fully validated Initialize request. Applying it can
// only fail because of the ledger.
type initialization struct {
	key         pact.Address
	escrow      *Escrow
	authority   pact.Condition
	createVault bool
	// stray is a balance left in a reused vault by transfers that were
	// not part of any escrow. It goes back to the initializer first.
	stray coin.Coin
}

// Check runs all validations of Deliver without touching the ledger.
func (h InitializeHandler) Check(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &pact.CheckResult{GasAllocated: initializeCost}, nil
}

// Deliver locks the deposit in the vault and stores the escrow. The
// escrow address is returned as the result data.
func (h InitializeHandler) Deliver(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.DeliverResult, error) {
	in, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	esc := in.escrow

	if in.createVault {
		if _, err := h.ledger.CreateAccount(db, esc.Vault, in.authority.Address(), esc.DepositTicker); err != nil {
			return nil, errors.Wrap(err, "create vault")
		}
	}
	if in.stray.IsPositive() {
		actx := withAuthority(ctx, in.authority)
		if err := h.ledger.Transfer(actx, db, esc.Vault, esc.InitializerDeposit, in.stray); err != nil {
			return nil, errors.Wrap(err, "sweep vault")
		}
	}
	if err := h.ledger.Transfer(ctx, db, esc.InitializerDeposit, esc.Vault, esc.Deposit()); err != nil {
		return nil, errors.Wrap(err, "deposit")
	}
	if err := h.bucket.Put(db, in.key, esc); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}

	pact.GetLogger(ctx).Info("escrow initialized",
		"escrow", in.key,
		"deposit", esc.Deposit(),
		"price", esc.Price(),
		"vault", esc.Vault)
	return &pact.DeliverResult{Data: in.key}, nil
}

func (h InitializeHandler) validate(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*initialization, error) {
	var msg InitializeMsg
	if err := pact.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	initializer, err := signer(ctx, h.auth, msg.Initializer)
	if err != nil {
		return nil, errors.Wrap(err, "initializer")
	}

	key, err := EscrowAddress(msg.Seed)
	if err != nil {
		return nil, err
	}
	switch err := h.bucket.Has(db, key); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "escrow %s is open", key)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}

	authority, bump, err := Authority()
	if err != nil {
		return nil, errors.Wrap(err, "custody authority")
	}
	authorityCond, err := authorityCondition(uint32(bump))
	if err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	vault, err := VaultAddress(conf.VaultStrategy, msg.Seed, authority, msg.DepositTicker)
	if err != nil {
		return nil, errors.Wrap(err, "vault")
	}
	if vault.Equals(msg.InitializerDeposit) || vault.Equals(msg.InitializerReceive) {
		return nil, errors.Wrap(errors.ErrInput, "vault address cannot be used as a participant account")
	}

	deposit, err := h.ledger.Account(db, msg.InitializerDeposit)
	if err != nil {
		return nil, errors.Wrap(err, "initializer deposit")
	}
	if !deposit.Owner.Equals(initializer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "deposit account is not owned by the initializer")
	}
	if deposit.Balance.Ticker != msg.DepositTicker {
		return nil, errors.Wrapf(errors.ErrCurrency, "deposit account holds %s", deposit.Balance.Ticker)
	}
	if deposit.Balance.Amount < msg.InitializerAmount {
		return nil, errors.Wrapf(errors.ErrAmount, "insufficient funds: %s", deposit.Balance)
	}

	if _, err := ownedAccount(db, h.ledger, msg.InitializerReceive, initializer, msg.TakerTicker); err != nil {
		return nil, errors.Wrap(err, "initializer receive")
	}

	createVault, stray, err := usableVault(db, h.bucket, h.ledger, vault, authority, msg.DepositTicker)
	if err != nil {
		return nil, err
	}

	esc := &Escrow{
		Seed:               msg.Seed,
		Initializer:        initializer,
		DepositTicker:      msg.DepositTicker,
		TakerTicker:        msg.TakerTicker,
		InitializerAmount:  msg.InitializerAmount,
		TakerAmount:        msg.TakerAmount,
		InitializerReceive: msg.InitializerReceive,
		InitializerDeposit: msg.InitializerDeposit,
		Vault:              vault,
		Bump:               uint32(bump),
	}
	if err := esc.Validate(); err != nil {
		return nil, err
	}
	return &initialization{
		key:         key,
		escrow:      esc,
		authority:   authorityCond,
		createVault: createVault,
		stray:       stray,
	}, nil
}

// usableVault checks that a vault can receive a new deposit. A missing
// vault must be created. An existing one is reused only when it belongs
// to the authority and no open escrow is backed by it. Whatever such an
// idle vault still holds is returned as stray.
func usableVault(db pact.ReadOnlyKVStore, bucket orm.ModelBucket, ledger Ledger, vault, authority pact.Address, ticker string) (create bool, stray coin.Coin, err error) {
	acc, err := ledger.Account(db, vault)
	switch {
	case errors.ErrNotFound.Is(err):
		return true, coin.Coin{}, nil
	case err != nil:
		return false, coin.Coin{}, errors.Wrap(err, "vault")
	}
	if !acc.Owner.Equals(authority) {
		return false, coin.Coin{}, errors.Wrapf(errors.ErrState, "vault %s is not owned by the custody authority", vault)
	}
	if acc.Balance.Ticker != ticker {
		return false, coin.Coin{}, errors.Wrapf(errors.ErrState, "vault %s holds %s", vault, acc.Balance.Ticker)
	}
	var open []*Escrow
	switch _, err := bucket.ByIndex(db, vaultIndex, vault, &open); {
	case err == nil && len(open) > 0:
		return false, coin.Coin{}, errors.Wrapf(errors.ErrState, "vault %s backs an open escrow", vault)
	case err != nil && !errors.ErrNotFound.Is(err):
		return false, coin.Coin{}, err
	}
	return false, acc.Balance, nil
}

// ExchangeHandler settles escrows.
type ExchangeHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	ledger Ledger
}

var _ pact.Handler = ExchangeHandler{}

type exchange struct {
	msg                 *ExchangeMsg
	escrow              *Escrow
	taker               pact.Address
	authority           pact.Condition
	createTakerReceive  bool
	createInitializerRx bool
	// residual is set when the vault holds more than the deposit. The
	// surplus goes to refundTo when the vault is closed.
	residual     bool
	refundTo     pact.Address
	createRefund bool
}

func (h ExchangeHandler) Check(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &pact.CheckResult{GasAllocated: exchangeCost}, nil
}

// Deliver pays the initializer, releases the vault to the taker, closes
// the vault and deletes the escrow.
func (h ExchangeHandler) Deliver(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.DeliverResult, error) {
	ex, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	esc, msg := ex.escrow, ex.msg

	if ex.createTakerReceive {
		if _, err := h.ledger.CreateAccount(db, msg.TakerReceive, ex.taker, esc.DepositTicker); err != nil {
			return nil, errors.Wrap(err, "create taker receive")
		}
	}
	if ex.createInitializerRx {
		if _, err := h.ledger.CreateAccount(db, esc.InitializerReceive, esc.Initializer, esc.TakerTicker); err != nil {
			return nil, errors.Wrap(err, "create initializer receive")
		}
	}

	if err := h.ledger.Transfer(ctx, db, msg.TakerDeposit, esc.InitializerReceive, esc.Price()); err != nil {
		return nil, errors.Wrap(err, "pay initializer")
	}
	actx := withAuthority(ctx, ex.authority)
	if err := h.ledger.Transfer(actx, db, esc.Vault, msg.TakerReceive, esc.Deposit()); err != nil {
		return nil, errors.Wrap(err, "release vault")
	}
	if ex.residual && ex.createRefund {
		if _, err := h.ledger.CreateAccount(db, ex.refundTo, esc.Initializer, esc.DepositTicker); err != nil {
			return nil, errors.Wrap(err, "create refund account")
		}
	}
	if err := h.ledger.CloseAccount(actx, db, esc.Vault, ex.refundTo); err != nil {
		return nil, errors.Wrap(err, "close vault")
	}
	if err := h.bucket.Delete(db, msg.Escrow); err != nil {
		return nil, errors.Wrap(err, "cannot delete escrow")
	}

	pact.GetLogger(ctx).Info("escrow settled", "escrow", msg.Escrow, "taker", ex.taker)
	return &pact.DeliverResult{}, nil
}

func (h ExchangeHandler) validate(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*exchange, error) {
	var msg ExchangeMsg
	if err := pact.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	var esc Escrow
	if err := h.bucket.One(db, msg.Escrow, &esc); err != nil {
		return nil, errors.Wrapf(err, "escrow %s", msg.Escrow)
	}
	if !msg.InitializerReceive.Equals(esc.InitializerReceive) {
		return nil, errors.Wrap(errors.ErrInput, "initializer receive account does not match the escrow")
	}
	if msg.TakerReceive.Equals(esc.InitializerReceive) {
		return nil, errors.Wrap(errors.ErrInput, "taker and initializer cannot receive into the same account")
	}
	if msg.TakerDeposit.Equals(esc.Vault) || msg.TakerReceive.Equals(esc.Vault) {
		return nil, errors.Wrap(errors.ErrInput, "vault cannot be used as a taker account")
	}

	taker, err := signer(ctx, h.auth, msg.Taker)
	if err != nil {
		return nil, errors.Wrap(err, "taker")
	}

	deposit, err := h.ledger.Account(db, msg.TakerDeposit)
	if err != nil {
		return nil, errors.Wrap(err, "taker deposit")
	}
	if !deposit.Owner.Equals(taker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "deposit account is not owned by the taker")
	}
	if deposit.Balance.Ticker != esc.TakerTicker {
		return nil, errors.Wrapf(errors.ErrCurrency, "escrow expects %s, taker deposit holds %s", esc.TakerTicker, deposit.Balance.Ticker)
	}
	if deposit.Balance.Amount < esc.TakerAmount {
		return nil, errors.Wrapf(errors.ErrAmount, "insufficient funds: %s", deposit.Balance)
	}

	takerReceive, err := ownedAccount(db, h.ledger, msg.TakerReceive, taker, esc.DepositTicker)
	if err != nil {
		return nil, errors.Wrap(err, "taker receive")
	}

	authority, vault, err := verifyVault(db, h.ledger, &esc)
	if err != nil {
		return nil, err
	}
	refundTo, createRefund, err := refundTarget(db, h.ledger, &esc)
	if err != nil {
		return nil, err
	}

	initializerRx, err := ownedAccount(db, h.ledger, esc.InitializerReceive, esc.Initializer, esc.TakerTicker)
	if err != nil {
		return nil, errors.Wrap(err, "initializer receive")
	}

	return &exchange{
		msg:                 &msg,
		escrow:              &esc,
		taker:               taker,
		authority:           authority,
		createTakerReceive:  takerReceive == nil,
		createInitializerRx: initializerRx == nil,
		residual:            vault.Balance.Amount > esc.InitializerAmount,
		refundTo:            refundTo,
		createRefund:        createRefund,
	}, nil
}

// CancelHandler returns the deposit of an escrow to its initializer.
type CancelHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	ledger Ledger
}

var _ pact.Handler = CancelHandler{}

type cancellation struct {
	key          pact.Address
	escrow       *Escrow
	authority    pact.Condition
	refundTo     pact.Address
	createRefund bool
}

func (h CancelHandler) Check(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &pact.CheckResult{GasAllocated: cancelCost}, nil
}

// Deliver refunds the whole vault to the initializer deposit account,
// closes the vault and deletes the escrow.
func (h CancelHandler) Deliver(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.DeliverResult, error) {
	c, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	esc := c.escrow

	if c.createRefund {
		if _, err := h.ledger.CreateAccount(db, c.refundTo, esc.Initializer, esc.DepositTicker); err != nil {
			return nil, errors.Wrap(err, "create refund account")
		}
	}
	actx := withAuthority(ctx, c.authority)
	if err := h.ledger.Transfer(actx, db, esc.Vault, c.refundTo, esc.Deposit()); err != nil {
		return nil, errors.Wrap(err, "refund")
	}
	if err := h.ledger.CloseAccount(actx, db, esc.Vault, c.refundTo); err != nil {
		return nil, errors.Wrap(err, "close vault")
	}
	if err := h.bucket.Delete(db, c.key); err != nil {
		return nil, errors.Wrap(err, "cannot delete escrow")
	}

	pact.GetLogger(ctx).Info("escrow cancelled", "escrow", c.key)
	return &pact.DeliverResult{}, nil
}

func (h CancelHandler) validate(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*cancellation, error) {
	var msg CancelMsg
	if err := pact.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	var esc Escrow
	if err := h.bucket.One(db, msg.Escrow, &esc); err != nil {
		return nil, errors.Wrapf(err, "escrow %s", msg.Escrow)
	}
	if !h.auth.HasAddress(ctx, esc.Initializer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the initializer can cancel")
	}
	authority, _, err := verifyVault(db, h.ledger, &esc)
	if err != nil {
		return nil, err
	}
	refundTo, createRefund, err := refundTarget(db, h.ledger, &esc)
	if err != nil {
		return nil, err
	}
	return &cancellation{
		key:          msg.Escrow,
		escrow:       &esc,
		authority:    authority,
		refundTo:     refundTo,
		createRefund: createRefund,
	}, nil
}

// verifyVault rebuilds the custody authority from the stored bump and
// checks that it owns the vault and that the vault still backs the whole
// deposit. Anything sent to the vault on top of the deposit does not
// block the escrow, it is returned to the initializer when the vault is
// closed.
func verifyVault(db pact.ReadOnlyKVStore, ledger Ledger, esc *Escrow) (pact.Condition, *cash.Account, error) {
	authority, err := authorityCondition(esc.Bump)
	if err != nil {
		return nil, nil, err
	}
	vault, err := ledger.Account(db, esc.Vault)
	if err != nil {
		return nil, nil, errors.Wrap(err, "vault")
	}
	if !vault.Owner.Equals(authority.Address()) {
		return nil, nil, errors.Wrap(errors.ErrState, "vault is not owned by the custody authority")
	}
	if vault.Balance.Ticker != esc.DepositTicker || vault.Balance.Amount < esc.InitializerAmount {
		return nil, nil, errors.Wrapf(errors.ErrState, "vault holds %s, escrow requires %s", vault.Balance, esc.Deposit())
	}
	return authority, vault, nil
}

// ownedAccount returns the account at addr. An existing account must be
// owned by owner and hold ticker. A missing account is returned as nil
// only when addr is the associated account of owner, the one address a
// transition may open on demand. Any other missing account is
// ErrNotFound, so no transition can open an account at an address that
// belongs to somebody else, a future vault for instance.
func ownedAccount(db pact.ReadOnlyKVStore, ledger Ledger, addr, owner pact.Address, ticker string) (*cash.Account, error) {
	acc, err := ledger.Account(db, addr)
	switch {
	case errors.ErrNotFound.Is(err):
		associated, aerr := cash.AssociatedAddress(owner, ticker)
		if aerr != nil {
			return nil, aerr
		}
		if !addr.Equals(associated) {
			return nil, errors.Wrapf(errors.ErrNotFound, "account %s", addr)
		}
		return nil, nil
	case err != nil:
		return nil, err
	}
	if !acc.Owner.Equals(owner) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "account %s has a different owner", addr)
	}
	if acc.Balance.Ticker != ticker {
		return nil, errors.Wrapf(errors.ErrCurrency, "account %s holds %s, not %s", addr, acc.Balance.Ticker, ticker)
	}
	return acc, nil
}

// refundTarget returns the account that gets deposit funds back from the
// vault: the initializer deposit account, or the associated account of
// the initializer once the deposit account was closed. create reports
// that the account does not exist yet.
func refundTarget(db pact.ReadOnlyKVStore, ledger Ledger, esc *Escrow) (addr pact.Address, create bool, err error) {
	acc, err := ownedAccount(db, ledger, esc.InitializerDeposit, esc.Initializer, esc.DepositTicker)
	if err == nil {
		return esc.InitializerDeposit, acc == nil, nil
	}
	if !errors.ErrNotFound.Is(err) {
		return nil, false, errors.Wrap(err, "initializer deposit")
	}
	addr, err = cash.AssociatedAddress(esc.Initializer, esc.DepositTicker)
	if err != nil {
		return nil, false, err
	}
	acc, err = ownedAccount(db, ledger, addr, esc.Initializer, esc.DepositTicker)
	if err != nil {
		return nil, false, errors.Wrap(err, "initializer refund")
	}
	return addr, acc == nil, nil
}

// signer returns the declared address or the main signer if none was
// declared. The returned address is always authenticated.
func signer(ctx pact.Context, auth x.Authenticator, declared pact.Address) (pact.Address, error) {
	if len(declared) == 0 {
		main := x.MainSigner(ctx, auth)
		if main == nil {
			return nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
		}
		return main.Address(), nil
	}
	if !auth.HasAddress(ctx, declared) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s did not sign", declared)
	}
	return declared, nil
}
