package domain

import (
	"fmt"
	"time"
)

// MonthlyTotals aggregates invoice category amounts per store and month.
// Keyed "<storeID>_<YYYYMM>" so a report read is a single item fetch.
type MonthlyTotals struct {
	StoreMonth  string             `json:"id" dynamodbav:"store_month"`
	StoreID     string             `json:"storeID" dynamodbav:"storeID"`
	TargetMonth int                `json:"targetMonth" dynamodbav:"targetMonth"`
	TargetYear  int                `json:"targetYear" dynamodbav:"targetYear"`
	Totals      map[string]float64 `json:"totals" dynamodbav:"totals"`
	UpdatedAt   time.Time          `json:"updatedAt" dynamodbav:"updated_at"`
}

// StoreMonthKey builds the totals document id for a store and month.
func StoreMonthKey(storeID string, month, year int) string {
	return fmt.Sprintf("%s_%d%02d", storeID, year, month)
}
