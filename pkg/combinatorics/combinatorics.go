// Package combinatorics builds Pascal's triangle for C(n,k) up to
// n=24, plus its reciprocals, so the probability table can multiply
// by a precomputed 1/C(n,k) instead of performing division at query
// time.
package combinatorics

import (
	"sync"

	"github.com/behrlich/thaipoker/pkg/cards"
	"github.com/behrlich/thaipoker/pkg/thaierr"
)

// MaxN is the largest n for which C(n,k) is tabulated (the deck size).
const MaxN = cards.CardNB

// Table holds C(n,k) and 1/C(n,k) for 0 <= k <= n <= MaxN.
type Table struct {
	c [MaxN + 1][MaxN + 1]int64
	i [MaxN + 1][MaxN + 1]float64
}

// Build constructs the table via the Pascal recurrence.
func Build() *Table {
	t := &Table{}
	t.c[0][0] = 1
	for n := 1; n <= MaxN; n++ {
		t.c[n][0] = 1
		t.c[n][n] = 1
		for k := 1; k < n; k++ {
			t.c[n][k] = t.c[n-1][k] + t.c[n-1][k-1]
		}
	}
	for n := 0; n <= MaxN; n++ {
		for k := 0; k <= n; k++ {
			t.i[n][k] = 1.0 / float64(t.c[n][k])
		}
	}
	return t
}

// C returns the binomial coefficient C(n,k). It fails with
// thaierr.OutOfRange if n or k is outside [0,MaxN] or k > n.
func (t *Table) C(n, k int) (int64, error) {
	if err := checkRange(n, k); err != nil {
		return 0, err
	}
	return t.c[n][k], nil
}

// Inv returns 1/C(n,k), precomputed for division-free queries. It
// fails with thaierr.OutOfRange under the same conditions as C.
func (t *Table) Inv(n, k int) (float64, error) {
	if err := checkRange(n, k); err != nil {
		return 0, err
	}
	return t.i[n][k], nil
}

func checkRange(n, k int) error {
	if n < 0 || n > MaxN {
		return thaierr.Newf(thaierr.OutOfRange, "n=%d out of [0,%d]", n, MaxN)
	}
	if k < 0 || k > n {
		return thaierr.Newf(thaierr.OutOfRange, "k=%d out of [0,%d]", k, n)
	}
	return nil
}

var (
	once     sync.Once
	instance *Table
)

// Get returns the process-wide combinatorics table, building it on
// first call.
func Get() *Table {
	once.Do(func() {
		instance = Build()
	})
	return instance
}
