package service

import (
	"context"
	"sort"
	"time"

	"finance_tracker/internal/models"
	"finance_tracker/internal/repository"
)

// Transactions shown per dashboard page.
const pageSize = 10

const (
	monthKeyLayout   = "2006-01"
	monthLabelLayout = "Jan 2006"
)

// Summary is the overall income/expense/balance projection.
type Summary struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// MonthBucket aggregates one calendar month of transactions.
// Month is a display label only; MonthKey carries the ordering semantics.
type MonthBucket struct {
	Month        string               `json:"month"`
	MonthKey     string               `json:"month_key"`
	Income       float64              `json:"income"`
	Expense      float64              `json:"expense"`
	Balance      float64              `json:"balance"`
	Transactions []models.Transaction `json:"transactions"`
}

// TransactionPage is one fixed-size slice of a filtered, sorted listing.
type TransactionPage struct {
	Transactions []models.Transaction `json:"transactions"`
	Page         int                  `json:"page"`
	TotalPages   int                  `json:"total_pages"`
	Total        int                  `json:"total"`
}

// DashboardService recomputes all views from the owner's full transaction set
// on every call. No aggregates are persisted or cached.
type DashboardService struct {
	transactions repository.Transactions
}

func NewDashboardService(transactions repository.Transactions) *DashboardService {
	return &DashboardService{transactions: transactions}
}

var _ Dashboard = (*DashboardService)(nil)

func (s *DashboardService) Summary(ctx context.Context, ownerID int) (Summary, error) {
	txs, err := s.transactions.ListByOwner(ctx, ownerID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(txs), nil
}

func (s *DashboardService) Monthly(ctx context.Context, ownerID int) ([]MonthBucket, error) {
	txs, err := s.transactions.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return MonthlyBreakdown(txs), nil
}

func (s *DashboardService) Page(ctx context.Context, ownerID int, q PageQuery) (TransactionPage, error) {
	txs, err := s.transactions.ListByOwner(ctx, ownerID)
	if err != nil {
		return TransactionPage{}, err
	}

	working := txs
	if q.MonthKey != "" {
		working = filterByMonth(working, q.MonthKey)
	}
	working = sortForListing(working, q.SortBy)

	page := q.Page
	if page < 1 {
		page = 1
	}
	total := len(working)
	totalPages := (total + pageSize - 1) / pageSize

	return TransactionPage{
		Transactions: paginate(working, page),
		Page:         page,
		TotalPages:   totalPages,
		Total:        total,
	}, nil
}

// Summarize sums amounts by type. balance = income - expense, exactly.
func Summarize(txs []models.Transaction) Summary {
	var sum Summary
	for _, t := range txs {
		switch t.Type {
		case models.TypeIncome:
			sum.Income += t.Amount
		case models.TypeExpense:
			sum.Expense += t.Amount
		}
	}
	sum.Balance = sum.Income - sum.Expense
	return sum
}

// MonthlyBreakdown groups transactions by the calendar year-month of their
// date. Buckets come back in ascending key order; the zero-padded "YYYY-MM"
// key makes lexicographic order chronological.
func MonthlyBreakdown(txs []models.Transaction) []MonthBucket {
	byKey := make(map[string]*MonthBucket)
	for _, t := range txs {
		key := MonthKey(t.Date)
		b, ok := byKey[key]
		if !ok {
			b = &MonthBucket{
				Month:    t.Date.UTC().Format(monthLabelLayout),
				MonthKey: key,
			}
			byKey[key] = b
		}
		b.Transactions = append(b.Transactions, t)
		switch t.Type {
		case models.TypeIncome:
			b.Income += t.Amount
		case models.TypeExpense:
			b.Expense += t.Amount
		}
		b.Balance = b.Income - b.Expense
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]MonthBucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, *byKey[k])
	}
	return out
}

// MonthKey returns the "YYYY-MM" bucket key for a date.
func MonthKey(t time.Time) string {
	return t.UTC().Format(monthKeyLayout)
}

// filterByMonth keeps only transactions whose date falls in the given bucket.
func filterByMonth(txs []models.Transaction, key string) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if MonthKey(t.Date) == key {
			out = append(out, t)
		}
	}
	return out
}

// sortForListing returns a copy ordered by the requested sort: amount
// descending, or date descending (the default).
func sortForListing(txs []models.Transaction, by string) []models.Transaction {
	out := make([]models.Transaction, len(txs))
	copy(out, txs)
	switch by {
	case SortByAmount:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	}
	return out
}

// paginate returns the 1-based page of the fixed page size. Out-of-range
// pages come back empty rather than failing.
func paginate(txs []models.Transaction, page int) []models.Transaction {
	start := (page - 1) * pageSize
	if start >= len(txs) {
		return []models.Transaction{}
	}
	end := start + pageSize
	if end > len(txs) {
		end = len(txs)
	}
	return txs[start:end]
}
