// Package accountid derives ledger account identifiers from principals and
// implements the textual principal encoding, including both checksums.
package accountid

import (
	"crypto/sha256"
	"encoding/base32"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash/crc32"
	"strings"
)

// domainSeparator is the padding hashed in front of the principal when
// deriving an account identifier.
const domainSeparator = "\x0Aaccount-id"

// SubaccountLen is the length in bytes of a ledger subaccount.
const SubaccountLen = 32

var principalEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// FromPrincipal derives the hex-encoded ledger account identifier for a raw
// principal and an optional subaccount. A nil subaccount selects the default
// (all-zero) subaccount.
func FromPrincipal(principal, subaccount []byte) (string, error) {
	if subaccount == nil {
		subaccount = make([]byte, SubaccountLen)
	}
	if len(subaccount) != SubaccountLen {
		return "", fmt.Errorf("subaccount must be %d bytes, got %d", SubaccountLen, len(subaccount))
	}

	h := sha256.New224()
	h.Write([]byte(domainSeparator))
	h.Write(principal)
	h.Write(subaccount)
	sum := h.Sum(nil)

	out := make([]byte, 4+len(sum))
	binary.BigEndian.PutUint32(out, crc32.ChecksumIEEE(sum))
	copy(out[4:], sum)
	return hex.EncodeToString(out), nil
}

// FromPrincipalText derives the account identifier for a principal in its
// textual representation.
func FromPrincipalText(principal string, subaccount []byte) (string, error) {
	raw, err := DecodePrincipal(principal)
	if err != nil {
		return "", err
	}
	return FromPrincipal(raw, subaccount)
}

// Verify checks that an hex account identifier is well formed and its
// checksum matches.
func Verify(accountID string) error {
	raw, err := hex.DecodeString(accountID)
	if err != nil {
		return fmt.Errorf("account id is not hex: %w", err)
	}
	if len(raw) != 32 {
		return fmt.Errorf("account id must be 32 bytes, got %d", len(raw))
	}
	if binary.BigEndian.Uint32(raw[:4]) != crc32.ChecksumIEEE(raw[4:]) {
		return fmt.Errorf("account id checksum mismatch")
	}
	return nil
}

// EncodePrincipal renders a raw principal in its textual representation:
// base32 of a big-endian CRC32 followed by the principal bytes, lowercased
// and grouped by 5 characters.
func EncodePrincipal(principal []byte) string {
	buf := make([]byte, 4+len(principal))
	binary.BigEndian.PutUint32(buf, crc32.ChecksumIEEE(principal))
	copy(buf[4:], principal)

	enc := strings.ToLower(principalEncoding.EncodeToString(buf))

	var b strings.Builder
	for i, c := range enc {
		if i > 0 && i%5 == 0 {
			b.WriteByte('-')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// DecodePrincipal parses the textual representation of a principal back into
// its raw bytes, verifying the embedded checksum.
func DecodePrincipal(text string) ([]byte, error) {
	compact := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(text), "-", ""))
	raw, err := principalEncoding.DecodeString(compact)
	if err != nil {
		return nil, fmt.Errorf("invalid principal %q: %w", text, err)
	}
	if len(raw) < 4 {
		return nil, fmt.Errorf("invalid principal %q: too short", text)
	}
	if binary.BigEndian.Uint32(raw[:4]) != crc32.ChecksumIEEE(raw[4:]) {
		return nil, fmt.Errorf("invalid principal %q: checksum mismatch", text)
	}
	return raw[4:], nil
}

// ShortPrincipal abbreviates a textual principal for display, keeping the
// first and last dash-separated groups.
func ShortPrincipal(principal string) string {
	parts := strings.Split(principal, "-")
	if len(parts) <= 2 {
		return principal
	}
	return parts[0] + "..." + parts[len(parts)-1]
}
