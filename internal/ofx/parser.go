// Package ofx converts OFX/QFX bank statements into expense records.
package ofx

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/khataflow/khataflow/internal/model"
	"github.com/khataflow/khataflow/internal/note"
)

// Parser implements OFX/QFX file parsing. Only debit transactions (money
// leaving the account) are imported; deposits have no expense equivalent
// and are skipped.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	// Trim any leading whitespace or blank lines before the header
	content = strings.TrimLeft(content, " \t\r\n")

	// Fix mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// Fix missing closing angle brackets in SGML-style OFX files
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX file and returns the expenses found in it.
func (p *Parser) ParseFile(_ context.Context, reader io.Reader) ([]model.ExpenseRecord, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	processedContent := p.preprocessOFX(string(content))

	resp, err := ofxgo.ParseResponse(strings.NewReader(processedContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var expenses []model.ExpenseRecord

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			for _, ofxTx := range stmt.BankTranList.Transactions {
				if expense, ok := p.convertTransaction(ofxTx); ok {
					expenses = append(expenses, expense)
				}
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			for _, ofxTx := range stmt.BankTranList.Transactions {
				if expense, ok := p.convertTransaction(ofxTx); ok {
					expenses = append(expenses, expense)
				}
			}
		}
	}

	return expenses, nil
}

// convertTransaction maps one OFX transaction to an expense record.
// Deposits (positive amounts) are skipped.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction) (model.ExpenseRecord, bool) {
	// OFX uses negative amounts for debits
	amount := decimal.NewFromBigRat(&ofxTx.TrnAmt.Rat, 2)
	if amount.Sign() >= 0 {
		return model.ExpenseRecord{}, false
	}
	amount = amount.Neg()

	vendorName := p.extractVendorName(ofxTx)

	return model.ExpenseRecord{
		// FiTID is the bank's stable transaction ID; reusing it makes
		// re-imports detectable.
		ID:         "ofx-" + string(ofxTx.FiTID),
		Date:       ofxTx.DtPosted.Time,
		VendorName: vendorName,
		Category:   note.InferCategory(vendorName + " " + string(ofxTx.Memo)),
		Amount:     amount,
		Note:       strings.TrimSpace(string(ofxTx.Memo)),
	}, true
}

// extractVendorName tries to get a clean vendor name from OFX data.
func (p *Parser) extractVendorName(tx ofxgo.Transaction) string {
	// Prefer PAYEE if available (cleaner merchant name)
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	// Fall back to NAME field
	name := string(tx.Name)

	// Use MEMO field if NAME is generic
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}

	name = strings.TrimSpace(name)

	// Remove common prefixes
	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"UPI/",
		"NEFT/",
		"IMPS/",
	}

	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Clean up date patterns like "MM/DD" at the beginning
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"POS TRANSACTION",
		"CARD PURCHASE",
	}

	upperName := strings.ToUpper(name)
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}
