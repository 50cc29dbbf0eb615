package domain

import "time"

// PlayerStats is a read model derived from a player and their completed
// sessions. It is computed fresh on every query and never persisted.
type PlayerStats struct {
	TotalSessions    int
	TotalDuration    Duration
	TotalBuyIn       Money
	TotalCashOut     Money
	NetProfit        Money
	BiggestWin       Money
	BiggestLoss      Money
	WinRate          float64
	AvgSessionResult Money
	HourlyRate       Money
	BestStreak       int
	WorstStreak      int
	CurrentStreak    int
	CurrentBankroll  Money
	LastSessionDate  *time.Time
}
