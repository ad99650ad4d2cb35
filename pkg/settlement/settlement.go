// Package settlement turns end-of-session balances into the payments that clear them
package settlement

import (
	"math"
	"sort"
)

// Balance is what a player put into and took out of a session, in currency units
type Balance struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	BuyIn   float64 `json:"buyIn"`
	CashOut float64 `json:"cashOut"`
}

// Net returns the player's winnings (negative for a loss)
func (b Balance) Net() float64 {
	return b.CashOut - b.BuyIn
}

// Payment is a transfer from a losing player to a winning player
type Payment struct {
	From   string  `json:"from"`
	FromID string  `json:"fromId"`
	To     string  `json:"to"`
	ToID   string  `json:"toId"`
	Amount float64 `json:"amount"`
}

type party struct {
	id    string
	name  string
	cents int64
}

// toCents rounds to the smallest currency unit
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Calculate greedily matches the largest debtor with the largest creditor until everyone is square
// Players with equal amounts keep their input order so the result is deterministic.
func Calculate(balances []Balance) []Payment {
	var debtors, creditors []*party
	for _, b := range balances {
		net := toCents(b.Net())
		switch {
		case net < 0:
			debtors = append(debtors, &party{id: b.ID, name: b.Name, cents: -net})
		case net > 0:
			creditors = append(creditors, &party{id: b.ID, name: b.Name, cents: net})
		}
	}

	byAmount := func(parties []*party) func(i, j int) bool {
		return func(i, j int) bool {
			return parties[i].cents > parties[j].cents
		}
	}

	sort.SliceStable(debtors, byAmount(debtors))
	sort.SliceStable(creditors, byAmount(creditors))

	payments := make([]Payment, 0, len(debtors)+len(creditors))
	for di, ci := 0, 0; di < len(debtors) && ci < len(creditors); {
		debtor, creditor := debtors[di], creditors[ci]

		amount := debtor.cents
		if creditor.cents < amount {
			amount = creditor.cents
		}

		payments = append(payments, Payment{
			From:   debtor.name,
			FromID: debtor.id,
			To:     creditor.name,
			ToID:   creditor.id,
			Amount: float64(amount) / 100,
		})

		debtor.cents -= amount
		creditor.cents -= amount

		if debtor.cents == 0 {
			di++
		}

		if creditor.cents == 0 {
			ci++
		}
	}

	return payments
}

// Total returns the sum of every payment
func Total(payments []Payment) float64 {
	var cents int64
	for _, p := range payments {
		cents += toCents(p.Amount)
	}

	return float64(cents) / 100
}
