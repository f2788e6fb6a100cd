package service

// suggestionKB holds static self-help guidance per predicted category.
// Unknown categories fall back to general_support.
var suggestionKB = map[string][]string{
	"technical": {
		"Check VPN client version.",
		"Restart your network adapter.",
		"Try another network to rule out local issues.",
		"Attach VPN logs if problem persists.",
	},
	"login_issue": {
		"Verify username & domain.",
		"Use the 'Forgot Password' link.",
		"Check MFA device connectivity.",
	},
	"billing": {
		"Verify invoice & billing period.",
		"Check recent credits or discounts.",
		"Compare with previous month usage.",
	},
	"refund": {
		"Verify refund eligibility.",
		"Confirm transaction ID & date.",
		"Prepare supporting documents.",
	},
	"bug": {
		"Document steps to reproduce.",
		"Attach screenshots or logs.",
		"Check if bug occurs on another device.",
	},
	"access_request": {
		"Ensure manager approval.",
		"Verify required security role.",
		"Specify App / Module / Access level.",
	},
	"general_support": {
		"Check internal FAQ.",
		"Provide full issue details.",
	},
}

// TipsForCategory returns self-help guidance for a category.
func TipsForCategory(category string) []string {
	if tips, ok := suggestionKB[category]; ok {
		return tips
	}
	return suggestionKB["general_support"]
}
