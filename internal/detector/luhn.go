package detector

// luhnValid reports whether a digit string passes the Luhn mod-10 checksum.
// Counting from the rightmost digit, every second digit is doubled and the
// digits of each doubled value are summed (a doubled value above 9 contributes
// its digit sum, i.e. value-9); the remaining digits contribute as-is. The
// total must be divisible by 10. Input containing anything but ASCII digits
// is invalid.
func luhnValid(digits string) bool {
	if digits == "" {
		return false
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}

		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}

	return sum%10 == 0
}
