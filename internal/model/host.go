package model

// HostStatus is the approval state of a host account.
type HostStatus string

const (
	HostActive    HostStatus = "ACTIVE"
	HostPending   HostStatus = "PENDING"
	HostRejected  HostStatus = "REJECTED"
	HostSuspended HostStatus = "SUSPENDED"
)

// Host is the admin-facing view of a host account.
type Host struct {
	HostID         int64      `json:"hostId"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	PhoneNumber    string     `json:"phoneNumber"`
	CompanyName    string     `json:"companyName"`
	BusinessNumber string     `json:"businessNumber"`
	Status         HostStatus `json:"status"`
}
