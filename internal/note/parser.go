// Package note parses free-text "magic notes" into structured transactions.
//
// A magic note is shorthand like "Sold 500 to Rahul" or "Spent 50*4 on
// fuel". Parsing is keyword-driven: a verb fixes the transaction kind, a
// preposition marks the counter-party, and the amount comes from embedded
// arithmetic, a bare number, or a product-quantity match against the
// catalog.
package note

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/khataflow/khataflow/internal/expr"
	"github.com/khataflow/khataflow/internal/model"
)

// DefaultParty is substituted by callers when a note names no counter-party.
const DefaultParty = "Walk-in"

// ExamplePhrases are shown to the user after a parse failure.
var ExamplePhrases = []string{
	"Sold 500 to Rahul",
	"Sold 2 milk to Priya upi",
	"Spent 200 on lunch",
	"Lent 1000 to Suresh",
	"Borrowed 5000 from Amit",
}

// ParseFailure indicates the note could not be understood. It carries a
// reason for logging but no partial transaction data.
type ParseFailure struct {
	Reason string
}

func (e *ParseFailure) Error() string {
	return "could not parse note: " + e.Reason
}

var (
	saleVerbs    = map[string]bool{"sold": true, "sale": true}
	expenseVerbs = map[string]bool{"spent": true, "paid": true, "bought": true}
	givenVerbs   = map[string]bool{"lent": true, "gave": true}
	takenVerbs   = map[string]bool{"borrowed": true, "owe": true}

	digitalWords = map[string]bool{"upi": true, "online": true, "digital": true}
)

// Parse converts a magic note into a structured transaction. The catalog
// enables quantity shorthand ("2 milk") for sale notes. On failure it
// returns a *ParseFailure, never a partial transaction.
func Parse(text string, catalog []model.Product) (*model.ParsedTransaction, error) {
	rawTokens := strings.Fields(text)
	tokens := make([]string, len(rawTokens))
	for i, tok := range rawTokens {
		tokens[i] = strings.ToLower(trimPunct(tok))
	}

	kind, direction, ok := classifyIntent(tokens)
	if !ok {
		return nil, &ParseFailure{Reason: "no transaction verb (sold, spent, lent, ...) found"}
	}

	amount, ok := extractAmount(text, tokens, rawTokens, kind, catalog)
	if !ok {
		return nil, &ParseFailure{Reason: "no usable amount found"}
	}
	if !amount.IsPositive() {
		return nil, &ParseFailure{Reason: "amount must be positive"}
	}

	parsed := &model.ParsedTransaction{
		Kind:            kind,
		Party:           extractParty(rawTokens, tokens),
		Note:            strings.TrimSpace(text),
		PaymentMethod:   inferPaymentMethod(tokens),
		CreditDirection: direction,
		Amount:          amount,
	}
	if kind == model.KindExpense {
		parsed.Category = inferCategory(tokens)
	}

	return parsed, nil
}

// classifyIntent scans for the first verb keyword and maps it to a
// transaction kind. Credit verbs also fix the direction.
func classifyIntent(tokens []string) (model.TransactionKind, model.CreditDirection, bool) {
	for _, tok := range tokens {
		switch {
		case saleVerbs[tok]:
			return model.KindSale, "", true
		case expenseVerbs[tok]:
			return model.KindExpense, "", true
		case givenVerbs[tok]:
			return model.KindCredit, model.CreditGiven, true
		case takenVerbs[tok]:
			return model.KindCredit, model.CreditTaken, true
		}
	}
	return "", "", false
}

// extractParty returns the first proper-noun-like token following a
// "to" or "from" preposition, or empty when the note names nobody.
func extractParty(rawTokens, tokens []string) string {
	for i, tok := range tokens {
		if tok != "to" && tok != "from" {
			continue
		}
		if i+1 >= len(rawTokens) {
			continue
		}
		candidate := trimPunct(rawTokens[i+1])
		if candidate == "" {
			continue
		}
		first := []rune(candidate)[0]
		if unicode.IsUpper(first) {
			return candidate
		}
	}
	return ""
}

// extractAmount resolves the note amount. For sale notes a catalog
// quantity match ("2 milk") wins over any literal number; otherwise the
// longest arithmetic substring is evaluated, falling back to the first
// standalone integer in the text.
func extractAmount(text string, tokens, rawTokens []string, kind model.TransactionKind, catalog []model.Product) (decimal.Decimal, bool) {
	if kind == model.KindSale {
		if amount, ok := catalogAmount(tokens, catalog); ok {
			return amount, true
		}
	}

	if candidate := longestArithmeticRun(text); candidate != "" {
		if amount, err := expr.Evaluate(candidate); err == nil {
			return amount, true
		}
	}

	for _, tok := range tokens {
		if n, err := strconv.Atoi(tok); err == nil {
			return decimal.NewFromInt(int64(n)), true
		}
	}

	return decimal.Zero, false
}

// catalogAmount matches "<qty> <productName>" against the catalog and
// derives qty * unitPrice. Product names resolve case-insensitively.
func catalogAmount(tokens []string, catalog []model.Product) (decimal.Decimal, bool) {
	if len(catalog) == 0 {
		return decimal.Zero, false
	}

	for i := 0; i+1 < len(tokens); i++ {
		qty, err := strconv.Atoi(tokens[i])
		if err != nil || qty <= 0 {
			continue
		}
		for _, product := range catalog {
			if strings.EqualFold(product.Name, tokens[i+1]) {
				return product.UnitPrice.Mul(decimal.NewFromInt(int64(qty))), true
			}
		}
	}

	return decimal.Zero, false
}

// longestArithmeticRun returns the longest substring of whitelisted
// arithmetic characters that contains a digit and is at least two
// characters long, or empty when none exists.
func longestArithmeticRun(text string) string {
	var best string

	runes := []rune(text)
	for i := 0; i < len(runes); {
		if !isArithmeticRune(runes[i]) {
			i++
			continue
		}
		start := i
		for i < len(runes) && isArithmeticRune(runes[i]) {
			i++
		}
		candidate := strings.TrimSpace(string(runes[start:i]))
		if len(candidate) >= 2 && strings.ContainsAny(candidate, "0123456789") && len(candidate) > len(best) {
			best = candidate
		}
	}

	return best
}

func isArithmeticRune(c rune) bool {
	return c >= '0' && c <= '9' ||
		c == '+' || c == '-' || c == '*' || c == '/' ||
		c == '(' || c == ')' || c == '.' || c == ' '
}

// inferPaymentMethod defaults to cash unless a digital keyword appears.
func inferPaymentMethod(tokens []string) model.PaymentMethod {
	for _, tok := range tokens {
		if digitalWords[tok] {
			return model.PaymentDigital
		}
		if tok == "cash" {
			return model.PaymentCash
		}
	}
	return model.PaymentCash
}

func trimPunct(s string) string {
	return strings.Trim(s, ".,!?;:'\"")
}
