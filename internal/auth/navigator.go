package auth

// Page is a destination the UI can be sent to.
type Page string

const (
	PageLogin Page = "login"
	PageHome  Page = "home"
	PageCart  Page = "cart"
)

// Navigator moves the user to another page. A missing token is handled by
// redirecting to PageLogin rather than by returning an error.
type Navigator interface {
	Redirect(page Page)
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func(page Page)

func (f NavigatorFunc) Redirect(page Page) { f(page) }
