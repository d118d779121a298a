package models

// Member roles. The student role is heavily restricted across the portal.
const (
	RoleEngineer = "Ingeniero Constructor"
	RoleStudent  = "Estudiante"
)

// Rank badges shown next to a member's name.
const (
	RankStudent = "estudiante"
	RankWhite   = "blanco"
	RankSilver  = "plata"
	RankGold    = "oro"
)

// RankForPoints maps accumulated points to a rank badge. Students keep
// their fixed badge regardless of points; everyone else climbs the
// threshold ladder.
func RankForPoints(role string, points int64) string {
	if role == RoleStudent {
		return RankStudent
	}
	switch {
	case points < 500:
		return RankWhite
	case points < 1000:
		return RankSilver
	default:
		return RankGold
	}
}
