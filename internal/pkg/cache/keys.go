package cache

import "fmt"

// Summary cache keys. Writers to the ledger must invalidate both keys
// for the affected user and month, otherwise readers serve stale
// aggregates.

func DailySummaryKey(userID, date string) string {
	return fmt.Sprintf("summary:daily:%s:%s", userID, date)
}

func MonthlySummaryKey(userID string, year, month int) string {
	return fmt.Sprintf("summary:monthly:%s:%d-%02d", userID, year, month)
}
