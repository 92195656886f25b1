package slug

import "math/big"

// Base36 encodes b, read as a big-endian unsigned integer, into lowercase
// base-36 digits (0-9a-z). There is no padding and no sign; zero, including
// the empty slice, has no digits and encodes to the empty string.
func Base36(b []byte) string {
	n := new(big.Int).SetBytes(b)
	if n.Sign() == 0 {
		return ""
	}
	return n.Text(36)
}
