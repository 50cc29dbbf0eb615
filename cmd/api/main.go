// Package main Poker Ledger API
//
// Poker Ledger is a financial tracking service for live poker sessions.
// Players record buy-ins, rebuys and cash-outs as an append-only ledger per
// session; the service settles net results against a tracked bankroll and
// derives aggregate statistics such as win rate, hourly rate and streaks.
package main

import (
	"context"

	"github.com/saradorri/pokerledger/internal/app"
)

func main() {
	ctx := context.Background()
	application := app.NewApplication(ctx)
	application.Setup()
}
