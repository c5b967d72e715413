package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost costo médio ponderado tras una entrada:
// ((estoque * custo) + (qtd * custoEntrada)) / (estoque + qtd), redondeado a 2 casas.
// Con estoque resultante <= 0 devuelve el costo de la entrada.
func WeightedAverageCost(stock int, cost decimal.Decimal, qty int, entryCost decimal.Decimal) decimal.Decimal {
	if stock < 0 {
		stock = 0
	}
	total := stock + qty
	if total <= 0 {
		return entryCost.Round(2)
	}
	num := decimal.NewFromInt(int64(stock)).Mul(cost).
		Add(decimal.NewFromInt(int64(qty)).Mul(entryCost))
	return num.Div(decimal.NewFromInt(int64(total))).Round(2)
}
