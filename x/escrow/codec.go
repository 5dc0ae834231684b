package escrow

import (
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/codec"
)

// Escrow holds the terms of a single open swap. It is stored under the
// address derived from its seed.
type Escrow struct {
	Seed []byte `protobuf:"bytes,1,opt,name=seed,proto3" json:"seed,omitempty"`
	// Initializer is the only identity allowed to cancel.
	Initializer   pact.Address `protobuf:"bytes,2,opt,name=initializer,proto3,casttype=github.com/iov-one/pact.Address" json:"initializer,omitempty"`
	DepositTicker string       `protobuf:"bytes,3,opt,name=deposit_ticker,json=depositTicker,proto3" json:"deposit_ticker,omitempty"`
	TakerTicker   string       `protobuf:"bytes,4,opt,name=taker_ticker,json=takerTicker,proto3" json:"taker_ticker,omitempty"`
	// InitializerAmount of DepositTicker is held by the vault.
	InitializerAmount uint64 `protobuf:"varint,5,opt,name=initializer_amount,json=initializerAmount,proto3" json:"initializer_amount,omitempty"`
	// TakerAmount of TakerTicker must be paid by the taker.
	TakerAmount        uint64       `protobuf:"varint,6,opt,name=taker_amount,json=takerAmount,proto3" json:"taker_amount,omitempty"`
	InitializerReceive pact.Address `protobuf:"bytes,7,opt,name=initializer_receive,json=initializerReceive,proto3,casttype=github.com/iov-one/pact.Address" json:"initializer_receive,omitempty"`
	InitializerDeposit pact.Address `protobuf:"bytes,8,opt,name=initializer_deposit,json=initializerDeposit,proto3,casttype=github.com/iov-one/pact.Address" json:"initializer_deposit,omitempty"`
	Vault              pact.Address `protobuf:"bytes,9,opt,name=vault,proto3,casttype=github.com/iov-one/pact.Address" json:"vault,omitempty"`
	// Bump of the custody authority address.
	Bump uint32 `protobuf:"varint,10,opt,name=bump,proto3" json:"bump,omitempty"`
}

func (e *Escrow) Marshal() ([]byte, error) {
	return codec.NewWriter().
		Bytes(1, e.Seed).
		Bytes(2, e.Initializer).
		String(3, e.DepositTicker).
		String(4, e.TakerTicker).
		Uint64(5, e.InitializerAmount).
		Uint64(6, e.TakerAmount).
		Bytes(7, e.InitializerReceive).
		Bytes(8, e.InitializerDeposit).
		Bytes(9, e.Vault).
		Uint64(10, uint64(e.Bump)).
		Result()
}

func (e *Escrow) Unmarshal(raw []byte) error {
	*e = Escrow{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		switch f.Num {
		case 1:
			e.Seed, err = f.Bytes()
		case 2:
			e.Initializer, err = f.Bytes()
		case 3:
			e.DepositTicker, err = f.String()
		case 4:
			e.TakerTicker, err = f.String()
		case 5:
			e.InitializerAmount, err = f.Uint64()
		case 6:
			e.TakerAmount, err = f.Uint64()
		case 7:
			e.InitializerReceive, err = f.Bytes()
		case 8:
			e.InitializerDeposit, err = f.Bytes()
		case 9:
			e.Vault, err = f.Bytes()
		case 10:
			var v uint64
			v, err = f.Uint64()
			e.Bump = uint32(v)
		}
		return err
	})
}

// InitializeMsg opens a new escrow and locks the deposit in its vault.
type InitializeMsg struct {
	Seed []byte `protobuf:"bytes,1,opt,name=seed,proto3" json:"seed,omitempty"`
	// Initializer defaults to the main signer.
	Initializer        pact.Address `protobuf:"bytes,2,opt,name=initializer,proto3,casttype=github.com/iov-one/pact.Address" json:"initializer,omitempty"`
	InitializerDeposit pact.Address `protobuf:"bytes,3,opt,name=initializer_deposit,json=initializerDeposit,proto3,casttype=github.com/iov-one/pact.Address" json:"initializer_deposit,omitempty"`
	InitializerReceive pact.Address `protobuf:"bytes,4,opt,name=initializer_receive,json=initializerReceive,proto3,casttype=github.com/iov-one/pact.Address" json:"initializer_receive,omitempty"`
	DepositTicker      string       `protobuf:"bytes,5,opt,name=deposit_ticker,json=depositTicker,proto3" json:"deposit_ticker,omitempty"`
	TakerTicker        string       `protobuf:"bytes,6,opt,name=taker_ticker,json=takerTicker,proto3" json:"taker_ticker,omitempty"`
	InitializerAmount  uint64       `protobuf:"varint,7,opt,name=initializer_amount,json=initializerAmount,proto3" json:"initializer_amount,omitempty"`
	TakerAmount        uint64       `protobuf:"varint,8,opt,name=taker_amount,json=takerAmount,proto3" json:"taker_amount,omitempty"`
}

func (m *InitializeMsg) Marshal() ([]byte, error) {
	return codec.NewWriter().
		Bytes(1, m.Seed).
		Bytes(2, m.Initializer).
		Bytes(3, m.InitializerDeposit).
		Bytes(4, m.InitializerReceive).
		String(5, m.DepositTicker).
		String(6, m.TakerTicker).
		Uint64(7, m.InitializerAmount).
		Uint64(8, m.TakerAmount).
		Result()
}

func (m *InitializeMsg) Unmarshal(raw []byte) error {
	*m = InitializeMsg{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		switch f.Num {
		case 1:
			m.Seed, err = f.Bytes()
		case 2:
			m.Initializer, err = f.Bytes()
		case 3:
			m.InitializerDeposit, err = f.Bytes()
		case 4:
			m.InitializerReceive, err = f.Bytes()
		case 5:
			m.DepositTicker, err = f.String()
		case 6:
			m.TakerTicker, err = f.String()
		case 7:
			m.InitializerAmount, err = f.Uint64()
		case 8:
			m.TakerAmount, err = f.Uint64()
		}
		return err
	})
}

// ExchangeMsg settles an open escrow.
type ExchangeMsg struct {
	Escrow pact.Address `protobuf:"bytes,1,opt,name=escrow,proto3,casttype=github.com/iov-one/pact.Address" json:"escrow,omitempty"`
	// Taker defaults to the main signer.
	Taker              pact.Address `protobuf:"bytes,2,opt,name=taker,proto3,casttype=github.com/iov-one/pact.Address" json:"taker,omitempty"`
	TakerDeposit       pact.Address `protobuf:"bytes,3,opt,name=taker_deposit,json=takerDeposit,proto3,casttype=github.com/iov-one/pact.Address" json:"taker_deposit,omitempty"`
	TakerReceive       pact.Address `protobuf:"bytes,4,opt,name=taker_receive,json=takerReceive,proto3,casttype=github.com/iov-one/pact.Address" json:"taker_receive,omitempty"`
	InitializerReceive pact.Address `protobuf:"bytes,5,opt,name=initializer_receive,json=initializerReceive,proto3,casttype=github.com/iov-one/pact.Address" json:"initializer_receive,omitempty"`
}

func (m *ExchangeMsg) Marshal() ([]byte, error) {
	return codec.NewWriter().
		Bytes(1, m.Escrow).
		Bytes(2, m.Taker).
		Bytes(3, m.TakerDeposit).
		Bytes(4, m.TakerReceive).
		Bytes(5, m.InitializerReceive).
		Result()
}

func (m *ExchangeMsg) Unmarshal(raw []byte) error {
	*m = ExchangeMsg{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		switch f.Num {
		case 1:
			m.Escrow, err = f.Bytes()
		case 2:
			m.Taker, err = f.Bytes()
		case 3:
			m.TakerDeposit, err = f.Bytes()
		case 4:
			m.TakerReceive, err = f.Bytes()
		case 5:
			m.InitializerReceive, err = f.Bytes()
		}
		return err
	})
}

// CancelMsg returns the deposit of an open escrow to the initializer.
type CancelMsg struct {
	Escrow pact.Address `protobuf:"bytes,1,opt,name=escrow,proto3,casttype=github.com/iov-one/pact.Address" json:"escrow,omitempty"`
}

func (m *CancelMsg) Marshal() ([]byte, error) {
	return codec.NewWriter().Bytes(1, m.Escrow).Result()
}

func (m *CancelMsg) Unmarshal(raw []byte) error {
	*m = CancelMsg{}
	return codec.Decode(raw, func(f codec.Field) error {
		if f.Num != 1 {
			return nil
		}
		var err error
		m.Escrow, err = f.Bytes()
		return err
	})
}

// Configuration of the escrow extension, stored via gconf.
type Configuration struct {
	Owner pact.Address `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/iov-one/pact.Address" json:"owner,omitempty"`
	// VaultStrategy selects how vault addresses of new escrows are
	// computed. One of "seed" or "associated".
	VaultStrategy string `protobuf:"bytes,2,opt,name=vault_strategy,json=vaultStrategy,proto3" json:"vault_strategy,omitempty"`
}

func (c *Configuration) Marshal() ([]byte, error) {
	return codec.NewWriter().
		Bytes(1, c.Owner).
		String(2, c.VaultStrategy).
		Result()
}

func (c *Configuration) Unmarshal(raw []byte) error {
	*c = Configuration{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		switch f.Num {
		case 1:
			c.Owner, err = f.Bytes()
		case 2:
			c.VaultStrategy, err = f.String()
		}
		return err
	})
}

// UpdateConfigurationMsg patches the escrow configuration.
type UpdateConfigurationMsg struct {
	Patch *Configuration `protobuf:"bytes,1,opt,name=patch,proto3" json:"patch,omitempty"`
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return codec.NewWriter().Message(1, m.Patch).Result()
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	*m = UpdateConfigurationMsg{}
	return codec.Decode(raw, func(f codec.Field) error {
		if f.Num != 1 {
			return nil
		}
		m.Patch = new(Configuration)
		return f.Message(m.Patch)
	})
}
