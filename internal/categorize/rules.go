package categorize

import (
	"regexp"

	"github.com/cleared-dev/statements/internal/model"
)

// Rule maps a description pattern to a category.
type Rule struct {
	Category model.Category
	Pattern  *regexp.Regexp
}

// defaultPatterns is ordered by priority: food delivery sits above ride-hailing
// so "GrabFood" never lands under Transport.
var defaultPatterns = []struct {
	category model.Category
	pattern  string
}{
	{model.CategoryFood, `grabfood|grab food|foodpanda|deliveroo|ntuc|fairprice|cold storage|sheng siong|giant|mcdonald|kfc|burger king|starbucks|toast box|ya kun|kopitiam|hawker|restaurant|cafe|bakery|food`},
	{model.CategoryTransport, `\bgrab\b|gojek|\btada\b|comfort|cdg|taxi|\bmrt\b|\bbus\b|transitlink|simplygo|ez-link|ezlink|\bshell\b|esso|caltex|\bspc\b|parking|carpark`},
	{model.CategoryUtilities, `sp services|sp group|singtel|starhub|\bm1\b|circles\.life|senoko|geneco|electricity|water|town council|utilities`},
	{model.CategorySubscription, `netflix|spotify|disney|youtube|apple\.com|icloud|amazon prime|prime video|google storage|google one|openai|chatgpt|subscription`},
	{model.CategoryShopping, `shopee|lazada|amazon|qoo10|taobao|zalora|uniqlo|ikea|courts|challenger|watsons|guardian|decathlon`},
	{model.CategoryIncome, `salary|payroll|dividend|interest credit|interest earned|bonus|cashback|rebate`},
	{model.CategoryTransfer, `paynow|paylah|transfer|\btrf\b|\bfast\b|\bgiro\b|\bibg\b|\batm\b|cash withdrawal`},
}

// DefaultRules returns the built-in rule table in priority order.
func DefaultRules() []Rule {
	rules := make([]Rule, len(defaultPatterns))
	for i, p := range defaultPatterns {
		rules[i] = Rule{Category: p.category, Pattern: regexp.MustCompile(p.pattern)}
	}
	return rules
}
