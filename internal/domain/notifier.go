package domain

import "context"

//go:generate mockgen -source=notifier.go -destination=notifier_mock.go -package=domain

// Notification is what the OS notification surface presents.
type Notification struct {
	Title string
	Body  string
	Extra map[string]any
}

// Notifier abstracts the OS notification surface. Permission handling
// mirrors the desktop API: a cheap granted check plus an explicit request.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
	PermissionGranted(ctx context.Context) (bool, error)
	RequestPermission(ctx context.Context) (bool, error)
}
