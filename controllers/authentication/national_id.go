package authentication

// ValidNationalID checks an Ecuadorian cédula: ten digits, a valid province
// prefix, and a mod-10 check digit.
func ValidNationalID(id string) bool {
	if len(id) != 10 {
		return false
	}
	digits := make([]int, 10)
	for i, c := range id {
		if c < '0' || c > '9' {
			return false
		}
		digits[i] = int(c - '0')
	}

	province := digits[0]*10 + digits[1]
	if !((province >= 1 && province <= 24) || province == 30) {
		return false
	}
	if digits[2] >= 6 {
		return false
	}

	coefficients := [9]int{2, 1, 2, 1, 2, 1, 2, 1, 2}
	sum := 0
	for i := 0; i < 9; i++ {
		v := digits[i] * coefficients[i]
		if v >= 10 {
			v -= 9
		}
		sum += v
	}

	check := sum % 10
	if check != 0 {
		check = 10 - check
	}
	return check == digits[9]
}
