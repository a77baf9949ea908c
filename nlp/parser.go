package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"ggumjisum/backend/models"
)

// DescriptionLimit is the maximum description length in runes; longer
// descriptions are truncated with a trailing ellipsis.
const DescriptionLimit = 30

var (
	// "digits (optionally thousand-grouped) + 원" takes priority; the
	// first occurrence wins when the unit appears more than once.
	amountWithWonRe = regexp.MustCompile(`(\d{1,3}(?:,?\d{3})*)\s*원`)
	// Bare trailing digits (4+) catch inputs like "문화상품권 50000".
	bareTrailingRe = regexp.MustCompile(`(\d{4,})\s*$`)

	// Weak income verbs only count when adjacent to a digit sequence, in
	// either order. Deliberately permissive; tightening it would change
	// classification behavior.
	weakAdjacencyRe = regexp.MustCompile(
		`받았.*\d|받음.*\d|받아.*\d|벌었.*\d|들어왔.*\d|\d.*받았|\d.*받음|\d.*받아|\d.*벌었|\d.*들어왔`)

	amountStripRe = regexp.MustCompile(`(\d+(?:,\d{3})*)\s*원?`)
	whitespaceRe  = regexp.MustCompile(`\s+`)

	// Sentence-final verb endings, stripped in this order.
	endingRes = []*regexp.Regexp{
		regexp.MustCompile(`[다요]\s*$`),
		regexp.MustCompile(`어요\s*$`),
		regexp.MustCompile(`았다\s*$`),
		regexp.MustCompile(`었다\s*$`),
	}

	fillerRes   []*regexp.Regexp
	particleRes []*regexp.Regexp
)

func init() {
	for _, w := range FillerWords {
		fillerRes = append(fillerRes, regexp.MustCompile(`(^|\s)`+regexp.QuoteMeta(w)+`(\s|$)`))
	}
	for _, p := range Particles {
		particleRes = append(particleRes, regexp.MustCompile(regexp.QuoteMeta(p)+`(\s|$)`))
	}
}

// Parse converts raw text into a ParseResult, or nil when the text is
// unparseable. Each step is a hard gate: no partial results.
func Parse(text string) *models.ParseResult {
	lower := strings.ToLower(strings.TrimSpace(text))

	amount, ok := extractAmount(text)
	if !ok {
		return nil
	}

	txType := models.TypeExpense
	if isIncome(lower) {
		txType = models.TypeIncome
	}

	category, matchCount := inferCategory(lower)

	confidence := 0.5
	if matchCount > 0 {
		confidence = 0.8
	}

	return &models.ParseResult{
		Type:        txType,
		Amount:      amount,
		Category:    category,
		Description: buildDescription(text, lower, category),
		Confidence:  confidence,
	}
}

func extractAmount(text string) (int64, bool) {
	var digits string
	if m := amountWithWonRe.FindStringSubmatch(text); m != nil {
		digits = m[1]
	} else if m := bareTrailingRe.FindStringSubmatch(text); m != nil {
		digits = m[1]
	}
	if digits == "" {
		return 0, false
	}
	amount, err := strconv.ParseInt(strings.ReplaceAll(digits, ",", ""), 10, 64)
	if err != nil || amount <= 0 {
		return 0, false
	}
	return amount, true
}

// isIncome classifies on the lowered text. Strong keywords win anywhere;
// weak keywords additionally need digit adjacency.
func isIncome(lower string) bool {
	for _, kw := range StrongIncomeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, kw := range WeakIncomeKeywords {
		if strings.Contains(lower, kw) {
			return weakAdjacencyRe.MatchString(lower)
		}
	}
	return false
}

// inferCategory picks the category with the strictly highest keyword
// match count, earliest in Categories order on ties. Zero matches fall
// back to etc.
func inferCategory(lower string) (string, int) {
	category := CategoryEtc
	maxCount := 0
	for _, cat := range Categories {
		count := 0
		for _, kw := range CategoryKeywords[cat] {
			if strings.Contains(lower, strings.ToLower(kw)) {
				count++
			}
		}
		if count > maxCount {
			maxCount = count
			category = cat
		}
	}
	return category, maxCount
}

// buildDescription prefers the longest matched category keyword; without
// a keyword match it cleans the raw text down to its subject, falling
// back to the Korean category name when nothing survives.
func buildDescription(text, lower, category string) string {
	var matched []string
	for _, kw := range CategoryKeywords[category] {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matched = append(matched, kw)
		}
	}
	if len(matched) > 0 {
		longest := matched[0]
		for _, kw := range matched[1:] {
			if utf8.RuneCountInString(kw) > utf8.RuneCountInString(longest) {
				longest = kw
			}
		}
		return longest
	}

	desc := strings.TrimSpace(amountStripRe.ReplaceAllString(text, ""))

	for _, kw := range StrongIncomeKeywords {
		desc = strings.TrimSpace(strings.ReplaceAll(desc, kw, ""))
	}
	for _, kw := range WeakIncomeKeywords {
		desc = strings.TrimSpace(strings.ReplaceAll(desc, kw, ""))
	}
	for _, re := range fillerRes {
		desc = strings.TrimSpace(re.ReplaceAllString(desc, " "))
	}
	for _, re := range particleRes {
		desc = re.ReplaceAllString(desc, " $1")
	}
	for _, re := range endingRes {
		desc = re.ReplaceAllString(desc, "")
	}
	desc = strings.TrimSpace(whitespaceRe.ReplaceAllString(desc, " "))

	if desc == "" {
		if name, ok := CategoryNames[category]; ok {
			return name
		}
		return CategoryNames[CategoryEtc]
	}
	return Truncate(desc, DescriptionLimit)
}

// Truncate shortens s to limit runes, appending "..." when it was longer.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
