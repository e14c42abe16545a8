package utils

import (
	"math"
	"strconv"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// ParseIntOrDefault converte um parâmetro de query em inteiro, usando o valor
// padrão quando a string é vazia
func ParseIntOrDefault(value string, defaultValue int) (int, error) {
	if value == "" {
		return defaultValue, nil
	}

	return strconv.Atoi(value)
}
