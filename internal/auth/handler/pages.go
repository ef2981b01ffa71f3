package handler

import (
	"bytes"
	"html/template"

	"github.com/gin-gonic/gin"
)

var (
	loginSuccessPage = template.Must(template.New("login_success").Parse(
		`<html><body><h1>Login successful!</h1><a href="/profile">Go to Profile</a></body></html>`))

	notLoggedInPage = template.Must(template.New("not_logged_in").Parse(
		`<html><body><p>You are not logged in. <a href="/login">Login</a></p></body></html>`))

	sessionExpiredPage = template.Must(template.New("session_expired").Parse(
		`<html><body><p>Session expired. <a href="/login">Login</a></p></body></html>`))

	profilePage = template.Must(template.New("profile").Parse(`<html>
<body>
	<h1>Profile Page</h1>
	<p><strong>Name:</strong> {{.Name}}</p>
	<p><strong>Email:</strong> {{.Email}}</p>
	<img src="{{.Picture}}" alt="Profile Picture" />
	<br/><a href="/todos">My Todos</a> | <a href="/logout">Log out</a>
</body>
</html>`))

	loggedOutPage = template.Must(template.New("logged_out").Parse(
		`<html><body><h1>You have been logged out.</h1><a href="/login">Login again</a></body></html>`))
)

// renderPage executes a template into a buffer first so a render failure never
// leaves a half-written response body.
func renderPage(c *gin.Context, status int, tmpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		c.String(500, "Failed to render page")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
