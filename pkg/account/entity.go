package account

import "time"

// Role is one of the three fixed account categories. Roles are seeded at
// startup and an account's role never changes after registration.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleHR    Role = "HR"
	RoleUser  Role = "User"
)

// ValidRole reports whether r is one of the seeded roles.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleHR || r == RoleUser
}

// Industry is the classification carried by User accounts only.
type Industry string

const (
	IndustrySoftware   Industry = "Software"
	IndustryFinance    Industry = "Finance"
	IndustryHealthcare Industry = "Healthcare"
	IndustryEducation  Industry = "Education"
)

// Industries lists the allowed values in display order.
var Industries = []Industry{IndustrySoftware, IndustryFinance, IndustryHealthcare, IndustryEducation}

// ValidIndustry reports whether ind is a member of the fixed enumeration.
func ValidIndustry(ind Industry) bool {
	for _, v := range Industries {
		if ind == v {
			return true
		}
	}
	return false
}

// Profile is the role-specific payload of an account: User accounts carry
// an industry, Admin and HR accounts carry nothing.
type Profile interface {
	profile()
}

// UserProfile is the payload of a User account.
type UserProfile struct {
	Industry Industry `json:"industry"`
}

func (UserProfile) profile() {}

// StaffProfile is the empty payload of Admin and HR accounts.
type StaffProfile struct{}

func (StaffProfile) profile() {}

// Account is a registered identity with exactly one role.
type Account struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"full_name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Profile      Profile   `json:"profile,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Industry returns the industry of a User account, or false for staff.
func (a Account) Industry() (Industry, bool) {
	if p, ok := a.Profile.(UserProfile); ok {
		return p.Industry, true
	}
	return "", false
}
