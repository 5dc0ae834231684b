package cash

import (
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/codec"
	"github.com/iov-one/pact/coin"
)

// Account is a balance of a single ticker, owned by an address.
type Account struct {
	Owner   pact.Address `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/iov-one/pact.Address" json:"owner,omitempty"`
	Balance coin.Coin    `protobuf:"bytes,2,opt,name=balance,proto3" json:"balance"`
}

func (a *Account) Marshal() ([]byte, error) {
	return codec.NewWriter().
		Bytes(1, a.Owner).
		Message(2, &a.Balance).
		Result()
}

func (a *Account) Unmarshal(raw []byte) error {
	*a = Account{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		switch f.Num {
		case 1:
			a.Owner, err = f.Bytes()
		case 2:
			err = f.Message(&a.Balance)
		}
		return err
	})
}

// Configuration is the ledger configuration stored via gconf.
type Configuration struct {
	// Owner is allowed to update the configuration.
	Owner pact.Address `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/iov-one/pact.Address" json:"owner,omitempty"`
	// Minter is the only address allowed to issue new coins.
	Minter pact.Address `protobuf:"bytes,2,opt,name=minter,proto3,casttype=github.com/iov-one/pact.Address" json:"minter,omitempty"`
}

func (c *Configuration) Marshal() ([]byte, error) {
	return codec.NewWriter().
		Bytes(1, c.Owner).
		Bytes(2, c.Minter).
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
			c.Minter, err = f.Bytes()
		}
		return err
	})
}

// SendMsg moves coins between two accounts of the same ticker.
type SendMsg struct {
	Source      pact.Address `protobuf:"bytes,1,opt,name=source,proto3,casttype=github.com/iov-one/pact.Address" json:"source,omitempty"`
	Destination pact.Address `protobuf:"bytes,2,opt,name=destination,proto3,casttype=github.com/iov-one/pact.Address" json:"destination,omitempty"`
	Amount      *coin.Coin   `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Memo        string       `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return codec.NewWriter().
		Bytes(1, m.Source).
		Bytes(2, m.Destination).
		Message(3, m.Amount).
		String(4, m.Memo).
		Result()
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	*m = SendMsg{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		switch f.Num {
		case 1:
			m.Source, err = f.Bytes()
		case 2:
			m.Destination, err = f.Bytes()
		case 3:
			m.Amount = new(coin.Coin)
			err = f.Message(m.Amount)
		case 4:
			m.Memo, err = f.String()
		}
		return err
	})
}

// CreateAccountMsg opens the associated account of the owner for a
// ticker.
type CreateAccountMsg struct {
	// Owner defaults to the main signer.
	Owner  pact.Address `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/iov-one/pact.Address" json:"owner,omitempty"`
	Ticker string       `protobuf:"bytes,2,opt,name=ticker,proto3" json:"ticker,omitempty"`
}

func (m *CreateAccountMsg) Marshal() ([]byte, error) {
	return codec.NewWriter().
		Bytes(1, m.Owner).
		String(2, m.Ticker).
		Result()
}

func (m *CreateAccountMsg) Unmarshal(raw []byte) error {
	*m = CreateAccountMsg{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		switch f.Num {
		case 1:
			m.Owner, err = f.Bytes()
		case 2:
			m.Ticker, err = f.String()
		}
		return err
	})
}

// MintMsg issues new coins into an existing account.
type MintMsg struct {
	Destination pact.Address `protobuf:"bytes,1,opt,name=destination,proto3,casttype=github.com/iov-one/pact.Address" json:"destination,omitempty"`
	Amount      *coin.Coin   `protobuf:"bytes,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *MintMsg) Marshal() ([]byte, error) {
	return codec.NewWriter().
		Bytes(1, m.Destination).
		Message(2, m.Amount).
		Result()
}

func (m *MintMsg) Unmarshal(raw []byte) error {
	*m = MintMsg{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		switch f.Num {
		case 1:
			m.Destination, err = f.Bytes()
		case 2:
			m.Amount = new(coin.Coin)
			err = f.Message(m.Amount)
		}
		return err
	})
}

// UpdateConfigurationMsg patches the ledger configuration.
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
