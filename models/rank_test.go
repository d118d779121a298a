package models

import "testing"

func TestRankForPoints(t *testing.T) {
	cases := []struct {
		role   string
		points int64
		want   string
	}{
		{RoleEngineer, 0, RankWhite},
		{RoleEngineer, 499, RankWhite},
		{RoleEngineer, 500, RankSilver},
		{RoleEngineer, 999, RankSilver},
		{RoleEngineer, 1000, RankGold},
		{RoleEngineer, 5000, RankGold},
		{RoleStudent, 0, RankStudent},
		{RoleStudent, 2000, RankStudent},
	}

	for _, c := range cases {
		if got := RankForPoints(c.role, c.points); got != c.want {
			t.Errorf("RankForPoints(%q, %d) = %q, want %q", c.role, c.points, got, c.want)
		}
	}
}
