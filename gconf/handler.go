package gconf

import (
	"reflect"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/x"
)

// OwnedConfig is a configuration that declares its owner. A configuration
// update message must be signed by the owner in order to be applied.
type OwnedConfig interface {
	Configuration
	GetOwner() pact.Address
}

// PatchMsg is implemented by configuration update messages. The returned
// payload must be of the same type as the stored configuration.
type PatchMsg interface {
	pact.Msg
	GetPatch() OwnedConfig
}

// UpdateConfigurationHandler applies configuration patches sent by the
// configuration owner.
type UpdateConfigurationHandler struct {
	pkg       string
	config    OwnedConfig
	auth      x.Authenticator
	initAdmin func(pact.ReadOnlyKVStore) (pact.Address, error)
}

var _ pact.Handler = UpdateConfigurationHandler{}

// NewUpdateConfigurationHandler returns a message handler that processes
// configuration patch messages for a single package.
//
// When no configuration exists yet, nobody owns it and nobody could
// create it. The optional initConfAdmin function returns an address that
// is allowed to create the configuration in that case only. Once a
// configuration exists it is ignored.
func NewUpdateConfigurationHandler(
	pkg string,
	config OwnedConfig,
	auth x.Authenticator,
	initConfAdmin func(pact.ReadOnlyKVStore) (pact.Address, error),
) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:       pkg,
		config:    config,
		auth:      auth,
		initAdmin: initConfAdmin,
	}
}

func (h UpdateConfigurationHandler) Check(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.CheckResult, error) {
	if err := h.applyTx(ctx, db, tx); err != nil {
		return nil, err
	}
	return &pact.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.DeliverResult, error) {
	if err := h.applyTx(ctx, db, tx); err != nil {
		return nil, err
	}
	pact.GetLogger(ctx).Info("configuration updated", "package", h.pkg)
	return &pact.DeliverResult{}, nil
}

func (h UpdateConfigurationHandler) applyTx(ctx pact.Context, db pact.KVStore, tx pact.Tx) error {
	switch err := Load(db, h.pkg, h.config); {
	case err == nil:
		owner := h.config.GetOwner()
		if owner == nil {
			return errors.Wrap(errors.ErrUnauthorized, "owner signature required")
		}
		if !h.auth.HasAddress(ctx, owner) {
			return errors.Wrap(errors.ErrUnauthorized, "owner did not sign transaction")
		}
	case errors.ErrNotFound.Is(err):
		if h.initAdmin == nil {
			return errors.Wrap(errors.ErrUnauthorized, "configuration does not exist and cannot be initialized")
		}
		admin, err := h.initAdmin(db)
		if err != nil {
			return errors.Wrap(err, "get init admin")
		}
		if !h.auth.HasAddress(ctx, admin) {
			return errors.Wrap(errors.ErrUnauthorized, "initialization admin signature required")
		}
	default:
		return errors.Wrap(err, "load current configuration")
	}

	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}
	pm, ok := msg.(PatchMsg)
	if !ok {
		return errors.Wrapf(errors.ErrMsg, "%T is not a configuration patch", msg)
	}
	if err := pm.Validate(); err != nil {
		return err
	}
	payload := pm.GetPatch()
	if payload == nil || reflect.ValueOf(payload).IsNil() {
		return errors.Wrap(errors.ErrState, "patch is required")
	}
	if err := patch(h.config, payload); err != nil {
		return errors.Wrap(err, "cannot patch config with message payload")
	}
	if err := Save(db, h.pkg, h.config); err != nil {
		return errors.Wrap(err, "cannot save updated config")
	}
	return nil
}

// patch copies every non zero field of the payload onto the config.
func patch(config, payload OwnedConfig) error {
	cval := reflect.ValueOf(config)
	pval := reflect.ValueOf(payload)
	if cval.Type() != pval.Type() || cval.Kind() != reflect.Ptr || cval.Elem().Kind() != reflect.Struct {
		return errors.Wrapf(errors.ErrMsg, "patch %T does not match %T", payload, config)
	}
	cval, pval = cval.Elem(), pval.Elem()
	for i := 0; i < cval.NumField(); i++ {
		if !cval.Field(i).CanSet() {
			continue
		}
		got := pval.Field(i)
		if isZero(got) {
			continue
		}
		cval.Field(i).Set(got)
	}
	return nil
}

func isZero(val reflect.Value) bool {
	zero := reflect.Zero(val.Type()).Interface()
	return reflect.DeepEqual(val.Interface(), zero)
}
