package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/GPTx-global/bitoracle/x/bitoracle/types"
)

// ParseOracleId parses a decimal oracle id.
func ParseOracleId(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse oracle ID: %w", err)
	}
	return id, nil
}

// ParseVote accepts true/false in the forms strconv.ParseBool understands.
func ParseVote(arg string) (bool, error) {
	vote, err := strconv.ParseBool(arg)
	if err != nil {
		return false, fmt.Errorf("vote must be true or false, got %q", arg)
	}
	return vote, nil
}

// DecodeHex decodes hex with or without the 0x prefix.
func DecodeHex(arg string) ([]byte, error) {
	if !strings.HasPrefix(arg, "0x") && !strings.HasPrefix(arg, "0X") {
		arg = "0x" + arg
	}
	return hexutil.Decode(arg)
}

// ParseNonce decodes a hex nonce of exactly types.NonceLength bytes.
func ParseNonce(arg string) ([]byte, error) {
	nonce, err := DecodeHex(arg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode nonce: %w", err)
	}
	if len(nonce) != types.NonceLength {
		return nil, fmt.Errorf("nonce must be %d bytes, got %d", types.NonceLength, len(nonce))
	}
	return nonce, nil
}

// ParseRevealDuration accepts a number of seconds or a Go duration such as 90s or 5m.
func ParseRevealDuration(arg string) (int64, error) {
	if secs, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return secs, nil
	}
	d, err := time.ParseDuration(arg)
	if err != nil {
		return 0, fmt.Errorf("failed to parse reveal duration %q", arg)
	}
	return int64(d / time.Second), nil
}
