// Package brdoc validates Brazilian CPF and CNPJ check digits.
package brdoc

import "strings"

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// ValidCPF reports whether cpf (formatted or bare) has valid check digits.
func ValidCPF(cpf string) bool {
	cpf = onlyDigits(cpf)
	if len(cpf) != 11 || allSame(cpf) {
		return false
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(cpf[i]-'0') * (10 - i)
	}
	dv1 := 11 - sum%11
	if dv1 >= 10 {
		dv1 = 0
	}

	sum = 0
	for i := 0; i < 10; i++ {
		sum += int(cpf[i]-'0') * (11 - i)
	}
	dv2 := 11 - sum%11
	if dv2 >= 10 {
		dv2 = 0
	}

	return int(cpf[9]-'0') == dv1 && int(cpf[10]-'0') == dv2
}

// ValidCNPJ reports whether cnpj (formatted or bare) has valid check digits.
func ValidCNPJ(cnpj string) bool {
	cnpj = onlyDigits(cnpj)
	if len(cnpj) != 14 || allSame(cnpj) {
		return false
	}

	weights1 := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	sum := 0
	for i, w := range weights1 {
		sum += int(cnpj[i]-'0') * w
	}
	dv1 := 11 - sum%11
	if dv1 >= 10 {
		dv1 = 0
	}

	weights2 := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	sum = 0
	for i, w := range weights2 {
		sum += int(cnpj[i]-'0') * w
	}
	dv2 := 11 - sum%11
	if dv2 >= 10 {
		dv2 = 0
	}

	return int(cnpj[12]-'0') == dv1 && int(cnpj[13]-'0') == dv2
}
