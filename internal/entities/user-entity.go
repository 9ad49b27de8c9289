package entities

import "time"

type User struct {
	ID             uint64    `db:"id"`
	Login          string    `db:"login"`
	PasswordHash   string    `db:"password_hash"`
	Fio            string    `db:"fio"`
	Phone          *string   `db:"phone"`
	DepartmentName *string   `db:"department_name"`
	Position       *string   `db:"position"`
	RoleCode       string    `db:"role_code"`
	IsReviewer     bool      `db:"is_reviewer"`
	CreatedAt      time.Time `db:"created_at"`
}
