package todo

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	notLoggedInPage = template.Must(template.New("not_logged_in").Parse(
		`<html><body><p>You are not logged in. <a href="/login">Login</a></p></body></html>`))

	sessionExpiredPage = template.Must(template.New("session_expired").Parse(
		`<html><body><p>Session expired. <a href="/login">Login</a></p></body></html>`))

	// todosPage drives the /api/todos endpoints from an embedded script.
	todosPage = template.Must(template.New("todos").Parse(`<html>
<body>
	<h1>{{.Name}}'s Todos</h1>
	<ul id="todo-list"></ul>
	<form id="todo-form">
		<input id="todo-text" type="text" placeholder="What needs doing?" />
		<button type="submit">Add</button>
	</form>
	<button id="todo-clear">Clear all</button>
	<br/><a href="/profile">Profile</a> | <a href="/logout">Log out</a>
	<script>
	async function refresh() {
		const res = await fetch('/api/todos');
		if (!res.ok) { window.location = '/login'; return; }
		const items = await res.json();
		const list = document.getElementById('todo-list');
		list.innerHTML = '';
		for (const item of items) {
			const li = document.createElement('li');
			li.textContent = item.text;
			list.appendChild(li);
		}
	}
	document.getElementById('todo-form').addEventListener('submit', async (e) => {
		e.preventDefault();
		const input = document.getElementById('todo-text');
		if (!input.value) return;
		await fetch('/api/todos', {
			method: 'POST',
			headers: { 'Content-Type': 'application/json' },
			body: JSON.stringify({ text: input.value }),
		});
		input.value = '';
		refresh();
	});
	document.getElementById('todo-clear').addEventListener('click', async () => {
		await fetch('/api/todos', { method: 'DELETE' });
		refresh();
	});
	refresh();
	</script>
</body>
</html>`))
)

func renderPage(c *gin.Context, tmpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		c.String(http.StatusInternalServerError, "Failed to render page")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
