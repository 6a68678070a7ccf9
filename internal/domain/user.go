package domain

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// User is the logged-in player. Grade is set for students, Subject for teachers.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
	Avatar  string `json:"avatar,omitempty"`
	Grade   string `json:"grade,omitempty"`
	Subject string `json:"subject,omitempty"`
}
