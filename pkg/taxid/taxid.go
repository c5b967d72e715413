// Package taxid valida los identificadores fiscales brasileños CPF (pessoa física)
// y CNPJ (pessoa jurídica) por sus dígitos verificadores módulo 11.
package taxid

import "unicode"

const (
	cpfLength  = 11
	cnpjLength = 14
)

// pesos del CNPJ para el primer dígito verificador; el segundo antepone un 6.
var cnpjWeights = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}

// ValidCPF acepta el CPF con o sin máscara ("529.982.247-25" o "52998224725").
// Secuencias de un mismo dígito se rechazan aunque cumplan la suma.
func ValidCPF(s string) bool {
	d := Digits(s)
	if len(d) != cpfLength || allEqual(d) {
		return false
	}
	for t := 9; t < 11; t++ {
		sum := 0
		for c := 0; c < t; c++ {
			sum += int(d[c]-'0') * (t + 1 - c)
		}
		if byte('0'+((10*sum)%11)%10) != d[t] {
			return false
		}
	}
	return true
}

// ValidCNPJ acepta el CNPJ con o sin máscara ("11.222.333/0001-81" o "11222333000181").
func ValidCNPJ(s string) bool {
	d := Digits(s)
	if len(d) != cnpjLength || allEqual(d) {
		return false
	}
	if cnpjDigit(d[:12], cnpjWeights[1:]) != d[12] {
		return false
	}
	return cnpjDigit(d[:13], cnpjWeights[:]) == d[13]
}

func cnpjDigit(base string, weights []int) byte {
	sum := 0
	for i := 0; i < len(base); i++ {
		sum += int(base[i]-'0') * weights[i]
	}
	r := sum % 11
	if r < 2 {
		return '0'
	}
	return byte('0' + 11 - r)
}

// Digits devuelve solo los dígitos ASCII de s.
func Digits(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r < 0x80 && unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return string(out)
}

// FormatCPF aplica la máscara 000.000.000-00; si no tiene 11 dígitos devuelve la entrada.
func FormatCPF(s string) string {
	d := Digits(s)
	if len(d) != cpfLength {
		return s
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// FormatCNPJ aplica la máscara 00.000.000/0000-00; si no tiene 14 dígitos devuelve la entrada.
func FormatCNPJ(s string) string {
	d := Digits(s)
	if len(d) != cnpjLength {
		return s
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

func allEqual(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}
