package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// CanManageOthers reports whether the role may act on other users' data
// (assign tasks, compute KPIs for others, record evaluations).
func (r Role) CanManageOthers() bool {
	return r == RoleAdmin || r == RoleManager
}

type User struct {
	ID        string
	FullName  string
	Role      Role
	QRToken   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
