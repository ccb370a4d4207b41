package utils

// IsCNPJValid runs the RFB check-digit arithmetic over a 14 digit CNPJ.
// The producer schema never calls this, it only gates external lookups.
func IsCNPJValid(cnpj string) bool {
	if len(cnpj) != CNPJDigits || !IsOnlyNumbers(cnpj) {
		return false
	}

	// Reject known invalid patterns that trick the math algorithm
	if hasAllSameDigits(cnpj) {
		return false
	}

	weights1 := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	weights2 := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}

	return mod11Digit(cnpj[:12], weights1) == digitAt(cnpj, 12) &&
		mod11Digit(cnpj[:13], weights2) == digitAt(cnpj, 13)
}

// IsCPFValid is the CPF counterpart of IsCNPJValid.
func IsCPFValid(cpf string) bool {
	if len(cpf) != CPFDigits || !IsOnlyNumbers(cpf) {
		return false
	}

	if hasAllSameDigits(cpf) {
		return false
	}

	weights1 := []int{10, 9, 8, 7, 6, 5, 4, 3, 2}
	weights2 := []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2}

	return mod11Digit(cpf[:9], weights1) == digitAt(cpf, 9) &&
		mod11Digit(cpf[:10], weights2) == digitAt(cpf, 10)
}

func hasAllSameDigits(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

func mod11Digit(base string, weights []int) int {
	sum := 0
	for i, weight := range weights {
		sum += digitAt(base, i) * weight
	}

	remainder := sum % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}

func digitAt(s string, i int) int {
	return int(s[i] - '0')
}
