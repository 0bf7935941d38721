package normalize

import (
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/maplebudget/mapleparse/parser/common"
)

// taxonomy is the fixed category order. When keywords from several categories
// match one description, the earliest category wins. Keywords are English
// plus Canadian merchant names; French statement wording is a known gap and
// such lines fall through to Uncategorised.
var taxonomy = []struct {
	name     string
	keywords []string
}{
	{"Employment", []string{"PAYROLL", "SALARY", "PAYCHEQUE", "DIRECT DEPOSIT", "EMPLOYMENT INSURANCE"}},
	{"Housing", []string{"RENT", "MORTGAGE", "PROPERTY TAX", "CONDO FEE", "LANDLORD"}},
	{"Utilities", []string{"HYDRO", "BELL", "ROGERS", "TELUS", "VIDEOTRON", "FIDO", "KOODO", "ENBRIDGE", "INTERNET", "WIRELESS"}},
	{"Groceries", []string{"METRO", "LOBLAWS", "SOBEYS", "IGA", "PROVIGO", "MAXI", "SUPERSTORE", "NO FRILLS", "FOOD BASICS", "FRESHCO", "SAFEWAY", "COSTCO", "WALMART", "GROCER", "SUPERMARKET"}},
	{"Dining", []string{"TIM HORTONS", "STARBUCKS", "MCDONALD", "SUBWAY", "A&W", "HARVEY'S", "RESTAURANT", "CAFE", "PIZZA", "SUSHI", "UBER EATS", "DOORDASH", "SKIP THE DISHES"}},
	{"Transportation", []string{"PRESTO", "TTC", "STM", "OPUS", "GO TRANSIT", "PETRO-CANADA", "PETRO CANADA", "ESSO", "SHELL", "ULTRAMAR", "UBER", "LYFT", "VIA RAIL", "PARKING", "TAXI"}},
	{"Shopping", []string{"AMAZON", "CANADIAN TIRE", "DOLLARAMA", "WINNERS", "BEST BUY", "IKEA", "HOME DEPOT", "THE BAY", "SIMONS", "SPORT CHEK"}},
	{"Entertainment", []string{"NETFLIX", "SPOTIFY", "DISNEY", "CRAVE", "CINEPLEX", "STEAM", "PLAYSTATION", "XBOX", "CINEMA", "THEATRE"}},
	{"Healthcare", []string{"PHARMACY", "PHARMAPRIX", "SHOPPERS DRUG", "JEAN COUTU", "REXALL", "DENTAL", "CLINIC", "PHYSIO", "OPTOMETR", "MEDICAL"}},
}

// The matcher scans every keyword in a single pass; keywordRank maps matcher
// pattern indices back to taxonomy positions. Built once, read-only after.
var (
	matcher     *ahocorasick.Matcher
	keywordRank []int
)

func init() {
	var patterns []string
	for rank, entry := range taxonomy {
		for _, keyword := range entry.keywords {
			patterns = append(patterns, keyword)
			keywordRank = append(keywordRank, rank)
		}
	}
	matcher = ahocorasick.NewStringMatcher(patterns)
}

// Categorize assigns a coarse category from the keyword taxonomy. This is a
// best-effort heuristic; downstream systems may override it per user.
func Categorize(description string) string {
	hits := matcher.Match([]byte(strings.ToUpper(description)))
	if len(hits) == 0 {
		return common.CategoryUncategorised
	}

	best := len(taxonomy)
	for _, hit := range hits {
		if rank := keywordRank[hit]; rank < best {
			best = rank
		}
	}
	return taxonomy[best].name
}
