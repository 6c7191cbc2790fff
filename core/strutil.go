package core

// Itoa converts an integer to a string without using fmt package
// This is a lightweight alternative for embedded systems
func Itoa(n int) string {
	if n == 0 {
		return "0"
	}
	if n < 0 {
		return "-" + utoa(uint32(-n))
	}
	return utoa(uint32(n))
}

// utoa converts an unsigned integer to a string
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	var buf [10]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}

	return string(buf[pos:])
}

// Utoa is the exported form of utoa for packages outside core
func Utoa(n uint32) string {
	return utoa(n)
}

// hexNibble formats the low nibble of v as an upper-case hex digit
func hexNibble(v uint8) byte {
	v &= 0x0F
	if v < 10 {
		return '0' + v
	}
	return 'A' + v - 10
}

// Hex8 formats a byte as two hex digits with a 0x prefix
func Hex8(v uint8) string {
	return string([]byte{'0', 'x', hexNibble(v >> 4), hexNibble(v)})
}
