package entity

type User struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password"`
	IsAdmin      bool   `db:"is_admin"`
}
