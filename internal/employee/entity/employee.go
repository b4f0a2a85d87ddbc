package entity

import "time"

// Employee is a directory record. Email is unique at the store, same as
// the users table.
type Employee struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Email       string    `db:"email" json:"email"`
	Designation string    `db:"designation" json:"designation"`
	PhoneNumber string    `db:"phone_number" json:"phoneNumber"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
