//go:build !windows

// Package notify sends desktop notifications for notable weather changes.
package notify

import "fyne.io/fyne/v2"

func Send(app fyne.App, title, message string) error {
	app.SendNotification(fyne.NewNotification(title, message))
	return nil
}
