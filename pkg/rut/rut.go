// Package rut valida el Rol Único Tributario chileno (módulo 11).
package rut

import (
	"fmt"
	"strings"
)

// Clean quita puntos y guión y normaliza la K a mayúscula: "12.345.678-k" -> "12345678K".
func Clean(rut string) string {
	r := strings.ReplaceAll(rut, ".", "")
	r = strings.ReplaceAll(r, "-", "")
	return strings.ToUpper(strings.TrimSpace(r))
}

// Validate verifica largo y dígito verificador. Acepta el RUT con o sin formato.
func Validate(rut string) error {
	value := Clean(rut)
	if len(value) < 8 || len(value) > 9 {
		return fmt.Errorf("rut: largo inválido (%d caracteres sin formato)", len(value))
	}
	body, dv := value[:len(value)-1], value[len(value)-1]
	expected, err := ComputeVerificationDigit(body)
	if err != nil {
		return err
	}
	if expected != dv {
		return fmt.Errorf("rut: dígito verificador inválido: esperado %c, recibido %c", expected, dv)
	}
	return nil
}

// ComputeVerificationDigit calcula el DV para el cuerpo numérico del RUT.
// Multiplicadores 2..7 de derecha a izquierda; 11 -> '0', 10 -> 'K'.
func ComputeVerificationDigit(body string) (byte, error) {
	if body == "" {
		return 0, fmt.Errorf("rut: cuerpo vacío")
	}
	sum, multiplier := 0, 2
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("rut: el cuerpo solo admite dígitos, se encontró %q", c)
		}
		sum += int(c-'0') * multiplier
		if multiplier == 7 {
			multiplier = 2
		} else {
			multiplier++
		}
	}
	switch expected := 11 - sum%11; expected {
	case 11:
		return '0', nil
	case 10:
		return 'K', nil
	default:
		return byte('0' + expected), nil
	}
}
