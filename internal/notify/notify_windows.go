// Package notify sends desktop notifications for notable weather changes.
// On Windows the fyne notification path is unreliable under the systray
// driver, so toasts are sent directly.
package notify

import (
	"fyne.io/fyne/v2"
	"github.com/go-toast/toast"
)

func Send(_ fyne.App, title, message string) error {
	notification := toast.Notification{
		AppID:   "Weather Tray",
		Title:   title,
		Message: message,
	}
	return notification.Push()
}
