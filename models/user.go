package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash *string            `bson:"passwordHash,omitempty" json:"-"`

	FirstName   string `bson:"firstName" json:"firstName"`
	LastName    string `bson:"lastName" json:"lastName"`
	DisplayName string `bson:"displayName" json:"displayName"`
	Phone       string `bson:"phone" json:"phone"`
	Company     string `bson:"company" json:"company"`
	JobTitle    string `bson:"jobTitle" json:"jobTitle"`

	Role     string `bson:"role" json:"role"` // "Ingeniero Constructor" or "Estudiante"
	Rank     string `bson:"rank" json:"rank"` // estudiante, blanco, plata, oro
	Points   int64  `bson:"points" json:"points"`
	PhotoURL string `bson:"photoUrl" json:"photoUrl"`
	Courses  string `bson:"courses" json:"courses"`

	IsAdmin          bool `bson:"isAdmin" json:"isAdmin"`
	CanViewDirectory bool `bson:"canViewDirectory" json:"canViewDirectory"`

	JoinedAt int64 `bson:"joinedAt" json:"joinedAt"`
}
