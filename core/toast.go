package core

// ToastStatus classifies a user-facing notification.
type ToastStatus string

const (
	ToastInfo    ToastStatus = "info"
	ToastWarning ToastStatus = "warning"
	ToastSuccess ToastStatus = "success"
	ToastError   ToastStatus = "error"
)

// Toast is a transient notification surfaced to the user. At most one is
// live at a time; the newest replaces the oldest and the consumer clears it.
type Toast struct {
	Status      ToastStatus
	Title       string
	Description string
}
