package user

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           int
	Username     string
	Email        string
	PasswordHash string
	Role         Role
}
