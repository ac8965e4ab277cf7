package dashboard

import (
	"github.com/srihari7072/golfzon-dashboard/internal/analytics"
	"github.com/srihari7072/golfzon-dashboard/internal/store/reservations"
)

// Rule tables for every categorical breakdown. Codes come from upstream data
// in several historical spellings, so each bucket carries the full alias set.

var bookingTypeRules = analytics.RuleSet[string]{
	Rules: []analytics.Rule[string]{
		{Key: "individual", Match: analytics.OneOf("G", "10", "general", "GEN")},
		{Key: "joint_organization", Match: analytics.OneOf("J", "20", "joint", "JOINT")},
		{Key: "general_organization", Match: analytics.OneOf("D", "30", "delegated", "general_org", "DELE")},
		{Key: "temporary_organization", Match: analytics.OneOf("T", "40", "temporary", "TEMP")},
	},
	Fallback: "others",
}

// Known channel code ids seen in production data. The free-text detail is
// checked only when the id does not decide.
const (
	channelIDPhone    = 39718
	channelIDInternet = 779
	channelIDAgency   = 39719
	channelIDAgent    = 1676
)

func channelMatch(id int, subs ...string) func(reservations.ChannelRow) bool {
	byDetail := analytics.ContainsAny(subs...)
	return func(ch reservations.ChannelRow) bool {
		return ch.CodeID == id || byDetail(ch.Detail)
	}
}

var channelRules = analytics.RuleSet[reservations.ChannelRow]{
	Rules: []analytics.Rule[reservations.ChannelRow]{
		{Key: "phone", Match: channelMatch(channelIDPhone, "phone", "tel", "call")},
		{Key: "internet", Match: channelMatch(channelIDInternet, "internet", "web", "online", "site")},
		{Key: "agency", Match: channelMatch(channelIDAgency, "agency", "travel")},
		{Key: "agent", Match: channelMatch(channelIDAgent, "agent", "staff", "manager")},
	},
	Fallback: "others",
}

// Lead-time buckets; labels feed the by_time pie legend. Rule order matters,
// the first match wins.
var leadTimeRules = analytics.RuleSet[int]{
	Rules: []analytics.Rule[int]{
		{Key: "d15_plus", Match: analytics.AtLeast(15)},
		{Key: "d14", Match: analytics.Exactly(14)},
		{Key: "d7", Match: analytics.Between(7, 14)},
		{Key: "d3", Match: analytics.Between(3, 7)},
		{Key: "d1", Match: analytics.Between(1, 3)},
		{Key: "d0", Match: analytics.Exactly(0)},
	},
	Fallback: "d0",
}

var leadTimeLabels = map[string]string{
	"d0":       "Same day",
	"d1":       "1-2 days ahead",
	"d3":       "3-6 days ahead",
	"d7":       "7-13 days ahead",
	"d14":      "14 days ahead",
	"d15_plus": "15+ days ahead",
}

var genderRules = analytics.RuleSet[string]{
	Rules: []analytics.Rule[string]{
		{Key: "male", Match: analytics.OneOf("M", "Male", "male", "1", "남", "남성")},
		{Key: "female", Match: analytics.OneOf("F", "Female", "female", "2", "여", "여성")},
	},
	Fallback: "others",
}

// Age buckets. Source queries filter ages to [0, 150], so the rules cover
// every value the classifier can see. Historical quirk: teens count as 20s.
var ageRules = analytics.RuleSet[int]{
	Rules: []analytics.Rule[int]{
		{Key: "under_10", Match: analytics.Between(0, 10)},
		{Key: "20s", Match: analytics.Between(10, 30)},
		{Key: "30s", Match: analytics.Between(30, 40)},
		{Key: "40s", Match: analytics.Between(40, 50)},
		{Key: "50s", Match: analytics.Between(50, 60)},
		{Key: "60_plus", Match: analytics.AtLeast(60)},
	},
	Fallback: "under_10",
}

// Operating-day sections by hour. Hours outside 05-18 fall in "other" and
// are excluded from the operation breakdown before tallying.
var sectionRules = analytics.RuleSet[int]{
	Rules: []analytics.Rule[int]{
		{Key: "part1", Match: analytics.Between(5, 12)},
		{Key: "part2", Match: analytics.Between(12, 16)},
		{Key: "part3", Match: analytics.Between(16, 19)},
	},
	Fallback: "other",
}

// Tee-time gauges use a wider evening part than the operation breakdown.
var teeTimeRules = analytics.RuleSet[int]{
	Rules: []analytics.Rule[int]{
		{Key: "part1", Match: analytics.Between(5, 12)},
		{Key: "part2", Match: analytics.Between(12, 16)},
		{Key: "part3", Match: analytics.Between(16, 20)},
	},
	Fallback: "other",
}
