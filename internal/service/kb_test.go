package service

import "testing"

func TestTipsForCategory(t *testing.T) {
	t.Parallel()

	if tips := TipsForCategory("technical"); len(tips) == 0 || tips[0] != "Check VPN client version." {
		t.Errorf("technical tips = %#v", tips)
	}

	fallback := TipsForCategory("general_support")
	if got := TipsForCategory("never_heard_of_it"); len(got) != len(fallback) || got[0] != fallback[0] {
		t.Errorf("unknown category tips = %#v, want general_support fallback", got)
	}
}
