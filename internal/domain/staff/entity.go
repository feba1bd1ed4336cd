package staff

type StaffProfile struct {
	ID         int64
	FullName   string
	Department string
	Position   string
	IsActive   bool
}
