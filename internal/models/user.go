package models

// User is a provisioned account. Users are seeded out-of-band; there is no
// signup surface.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
	Role         Role   `db:"-" json:"role"`
}
