package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/widget"
)

// newLoginView asks for the configured credentials and calls onSuccess once they check out.
func newLoginView(auth authenticator, onSuccess func()) fyne.CanvasObject {
	title := newSectionTitle(lang.X("login.title", "Sign in"))
	hint := widget.NewLabel(lang.X("login.hint", "This workstation requires a login before match data is shown."))
	hint.Wrapping = fyne.TextWrapWord

	user := widget.NewEntry()
	user.SetPlaceHolder(lang.X("login.username", "Username"))
	pass := widget.NewPasswordEntry()
	pass.SetPlaceHolder(lang.X("login.password", "Password"))

	errText := canvas.NewText("", uiDangerAccent)

	submit := func() {
		if err := auth.Check(user.Text, pass.Text); err != nil {
			errText.Text = lang.X("login.denied", "Invalid username or password")
			errText.Refresh()
			pass.SetText("")
			return
		}
		onSuccess()
	}
	pass.OnSubmitted = func(string) { submit() }

	loginBtn := widget.NewButton(lang.X("login.submit", "Sign in"), submit)
	loginBtn.Importance = widget.HighImportance

	form := container.NewVBox(title, hint, user, pass, errText, loginBtn)
	widthLock := canvas.NewRectangle(color.Transparent)
	widthLock.SetMinSize(fyne.NewSize(360, 0))
	return container.NewCenter(container.NewStack(widthLock, newSectionCard(form)))
}
