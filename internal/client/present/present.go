// Package present formats domain values for people. The terminal and the
// web portal render through the same helpers so both read the same.
package present

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/prescreen/internal/client/models"
	"github.com/dmitrijs2005/prescreen/internal/timex"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const currency = "₹"

// Amount renders a loan amount with thousands separators.
func Amount(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return currency + humanize.CommafWithDigits(f, 2)
}

// Ago renders a timestamp relative to now, or "-" when it is unset.
func Ago(ts timex.Timestamp) string {
	return agoFrom(ts, time.Now())
}

func agoFrom(ts timex.Timestamp, now time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return humanize.RelTime(ts.Time, now, "ago", "from now")
}

// Size renders a byte count ("12 kB").
func Size(n int) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// Status turns an enum tag into words: BLOCKED_MISSING_DOCS -> BLOCKED MISSING DOCS.
func Status[T ~string](s T) string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// RoleLabel is how a role is shown next to the user's name.
func RoleLabel(r models.Role) string {
	if r == models.RoleStaff {
		return "Bank Staff"
	}
	return "Applicant"
}

// Years renders a business age in years.
func Years(n int) string {
	if n == 1 {
		return "1 year"
	}
	return humanize.Comma(int64(n)) + " years"
}
