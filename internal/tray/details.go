package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// showDetails opens the details window, creating it on first use. Closing
// the window only hides it so it can be reopened from the menu.
func (a *App) showDetails() {
	if a.details == nil {
		w := a.fyneApp.NewWindow(fmt.Sprintf("Weather — %s", a.city))
		a.detailsText = widget.NewLabel("")
		a.detailsText.TextStyle = fyne.TextStyle{Monospace: true}
		w.SetContent(container.NewVScroll(a.detailsText))
		w.Resize(fyne.NewSize(380, 320))
		w.SetCloseIntercept(w.Hide)
		a.details = w
	}
	a.refreshDetails()
	a.details.Show()
}

func (a *App) refreshDetails() {
	if a.detailsText == nil {
		return
	}
	a.detailsText.SetText(summaryText(a.city, a.obs, a.hours, a.lastUpdate, a.lastErr))
}
