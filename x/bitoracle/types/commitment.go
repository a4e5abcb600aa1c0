package types

import (
	"bytes"

	errorsmod "cosmossdk.io/errors"

	"github.com/tendermint/tendermint/crypto/tmhash"
)

const (
	// NonceLength is the size of the secret a node mixes into its vote.
	NonceLength = 32
	// DigestLength is the size of a commitment.
	DigestLength = tmhash.Size
)

// CalculateHash binds a vote to a nonce: SHA-256(voteByte || nonce), where
// voteByte is 0x01 for true and 0x00 for false. It has no side effects and is
// safe to call off-chain to precompute commitments.
func CalculateHash(vote bool, nonce []byte) ([]byte, error) {
	if len(nonce) != NonceLength {
		return nil, errorsmod.Wrapf(ErrInvalidNonce, "expected %d bytes, got %d", NonceLength, len(nonce))
	}
	buf := make([]byte, 1+NonceLength)
	if vote {
		buf[0] = 1
	}
	copy(buf[1:], nonce)
	return tmhash.Sum(buf), nil
}

// MustCalculateHash is CalculateHash for callers that already validated the nonce.
func MustCalculateHash(vote bool, nonce []byte) []byte {
	digest, err := CalculateHash(vote, nonce)
	if err != nil {
		panic(err)
	}
	return digest
}

// ValidateDigest checks the length of a commitment.
func ValidateDigest(digest []byte) error {
	if len(digest) != DigestLength {
		return errorsmod.Wrapf(ErrInvalidCommitment, "expected %d bytes, got %d", DigestLength, len(digest))
	}
	return nil
}

// VerifyCommitment reports whether (vote, nonce) opens commitment. A malformed
// nonce never opens anything.
func VerifyCommitment(commitment []byte, vote bool, nonce []byte) bool {
	digest, err := CalculateHash(vote, nonce)
	if err != nil {
		return false
	}
	return bytes.Equal(digest, commitment)
}
