package types

import (
	"encoding/binary"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "bitoracle"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// QuerierRoute defines the module's legacy query routing key
	QuerierRoute = ModuleName
)

// KV Store key prefix bytes
const (
	prefixNextOracleId = iota + 1
	prefixOracle
	prefixNode
)

// KV Store key prefixes
var (
	KeyNextOracleId = []byte{prefixNextOracleId}
	KeyOracle       = []byte{prefixOracle}
	KeyNode         = []byte{prefixNode}
)

func IDToBytes(id uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, id)
	return bz
}

// GetOracleKey returns the key for storing an Oracle
func GetOracleKey(id uint64) []byte {
	return append(append([]byte{}, KeyOracle...), IDToBytes(id)...)
}

// GetNodesPrefix returns the prefix under which all nodes of an oracle are stored
func GetNodesPrefix(oracleId uint64) []byte {
	return append(append([]byte{}, KeyNode...), IDToBytes(oracleId)...)
}

// GetNodeKey returns the key for storing the node owned by addr on an oracle
func GetNodeKey(oracleId uint64, addr sdk.AccAddress) []byte {
	return append(GetNodesPrefix(oracleId), address.MustLengthPrefix(addr)...)
}

// ParseOracleKey parses an oracle key and returns the ID
func ParseOracleKey(key []byte) (uint64, error) {
	if len(key) != 9 {
		return 0, fmt.Errorf("invalid oracle key length: %d", len(key))
	}
	return binary.BigEndian.Uint64(key[1:]), nil
}

// EscrowAddress returns the account holding the collateral posted to an oracle.
func EscrowAddress(oracleId uint64) sdk.AccAddress {
	return sdk.AccAddress(address.Module(ModuleName, IDToBytes(oracleId)))
}
