package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
)

// Hex represents a hexadecimal-encoded quantity as a string (e.g., "0x1a"),
// the way Ethereum JSON-RPC encodes numbers. It provides validation, JSON
// marshaling/unmarshaling, and conversion to native integer types.
type Hex string

// HexFromString validates the input string and returns a Hex value if valid.
func HexFromString(s string) (Hex, error) {
	if err := validateHex(s); err != nil {
		return "", err
	}
	return Hex(s), nil
}

// HexFromUint64 encodes n as a canonical "0x"-prefixed hex quantity.
func HexFromUint64(n uint64) Hex {
	return Hex(fmt.Sprintf("0x%x", n))
}

// validateHex checks whether a string is a "0x"-prefixed hexadecimal number.
func validateHex(s string) error {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return fmt.Errorf("hex string must start with 0x")
	}

	digits := s[2:]
	if len(digits) == 0 {
		return fmt.Errorf("hex string has no digits")
	}
	for _, c := range digits {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return fmt.Errorf("invalid hexadecimal value: %q", s)
		}
	}

	return nil
}

// MarshalJSON encodes the Hex as a JSON string.
func (h Hex) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(h))
}

// UnmarshalJSON parses and validates a JSON-encoded hexadecimal string.
func (h *Hex) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid hex string: %w", err)
	}

	if err := validateHex(s); err != nil {
		return err
	}

	*h = Hex(s)
	return nil
}

// IsEmpty reports whether the Hex holds no value at all.
func (h Hex) IsEmpty() bool {
	return h == ""
}

// Uint64 returns the decoded uint64 value of the hexadecimal string.
// Invalid or empty values decode to zero.
func (h Hex) Uint64() uint64 {
	if len(h) < 3 {
		return 0
	}
	v, _ := strconv.ParseUint(string(h)[2:], 16, 64)
	return v
}

// Uint256 returns the decoded arbitrary-precision value of the hexadecimal
// string, or nil when the value is empty or malformed. Quantities such as
// wei amounts do not fit in 64 bits, so fee fields go through this path.
func (h Hex) Uint256() *uint256.Int {
	if h.IsEmpty() {
		return nil
	}

	v, err := uint256.FromHex(strings.ToLower(string(h)))
	if err != nil {
		return nil
	}
	return v
}

// Add returns a new Hex representing the current value plus n.
// An invalid original value is treated as zero.
func (h Hex) Add(n uint64) Hex {
	return HexFromUint64(h.Uint64() + n)
}
