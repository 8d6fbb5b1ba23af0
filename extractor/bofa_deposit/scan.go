package bofa_deposit

import (
	"strconv"
	"strings"

	"github.com/aqlanhadi/depsum/extractor/common"
	"github.com/shopspring/decimal"
)

// Scanner finds DES:DEPOSIT lines and sums their amounts.
type Scanner struct {
	cfg Config
}

func NewScanner(cfg Config) *Scanner {
	return &Scanner{cfg: cfg}
}

var defaultScanner = NewScanner(DefaultConfig())

// Scan runs the default patterns over text.
func Scan(text string) common.Summary {
	return defaultScanner.Scan(text)
}

// Match reports whether a file name is handled by this format.
func (s *Scanner) Match(fileName string) bool {
	return s.cfg.FileName.MatchString(fileName)
}

// Scan makes a single pass over the lines of text. A line counts when it
// carries the originator + DES:DEPOSIT marker, ends with an amount, and the
// next line is an "ID: ... CCD" confirmation. The last line is never a
// candidate since it has no next line.
func (s *Scanner) Scan(text string) common.Summary {
	summary := common.Summary{
		Deposits:      []common.Deposit{},
		TotalDeposit:  decimal.Zero,
		TotalWithdraw: decimal.Zero,
	}

	lines := SplitLines(text)
	currentPage := 0

	for i := 0; i < len(lines)-1; i++ {
		line := lines[i]

		if page, ok := s.pageNumber(line); ok {
			currentPage = page
			if page > summary.Pages {
				summary.Pages = page
			}
		}

		if !s.cfg.Deposit.MatchString(line) {
			continue
		}

		token, ok := s.amountToken(line)
		if !ok {
			continue
		}

		if !s.confirmed(lines[i+1]) {
			continue
		}

		amount, err := common.ParseAmount(token)
		if err != nil {
			continue
		}

		summary.Add(common.Deposit{
			Line:        i + 1,
			Page:        currentPage,
			Description: strings.TrimSpace(line),
			Amount:      amount,
		})
	}

	return summary
}

func (s *Scanner) pageNumber(line string) (int, bool) {
	m := s.cfg.Page.FindStringSubmatch(line)
	if len(m) < 2 {
		return 0, false
	}
	page, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return page, true
}

func (s *Scanner) amountToken(line string) (string, bool) {
	m := s.cfg.Amount.FindStringSubmatch(line)
	switch {
	case m == nil:
		return "", false
	case len(m) > 1:
		return m[1], true
	default:
		return m[0], true
	}
}

func (s *Scanner) confirmed(next string) bool {
	return strings.HasPrefix(next, s.cfg.ConfirmationPrefix) &&
		strings.Contains(next, s.cfg.ConfirmationMarker)
}

// SplitLines splits text on newlines. A trailing "\r" is removed from each
// line and a final newline does not produce an extra empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}
