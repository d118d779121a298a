package models

// MemberSummary is the public directory entry kept in the members
// index, a trimmed mirror of the profile document.
type MemberSummary struct {
	UID         string `bson:"uid" json:"uid"`
	DisplayName string `bson:"displayName" json:"displayName"`
	Company     string `bson:"company" json:"company"`
	Rank        string `bson:"rank" json:"rank"`
	PhotoURL    string `bson:"photoUrl" json:"photoUrl"`
}
