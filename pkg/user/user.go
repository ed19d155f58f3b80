package user

import "time"

// SequenceName is the counter used for user identifiers.
const SequenceName = "userId"

// BenefitDateLayout is the wire format of benefit start dates.
const BenefitDateLayout = time.DateOnly

// User is a stored account. PasswordHash is never serialized to JSON.
type User struct {
	ID               int64     `bson:"_id" json:"id"`
	UserName         string    `bson:"userName" json:"userName"`
	FirstName        string    `bson:"firstName" json:"firstName"`
	LastName         string    `bson:"lastName" json:"lastName"`
	PasswordHash     string    `bson:"password" json:"-"`
	Email            string    `bson:"email,omitempty" json:"email,omitempty"`
	IsAdmin          bool      `bson:"isAdmin" json:"isAdmin"`
	BenefitStartDate time.Time `bson:"benefitStartDate" json:"benefitStartDate"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// NewUser carries the input of CreateUser.
type NewUser struct {
	UserName  string
	FirstName string
	LastName  string
	Password  string
	Email     string
}
