package web

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

func AdminHome() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Human Bingo Admin</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Admin</span>
        <h1>Create a game</h1>
        <p>Name the game and enter one prompt per line.</p>
      </header>

      <section class="panel">
        <form method="post" action="/admin/create" class="admin-form">
          <input name="name" placeholder="Game name" value="Human Bingo"/>
          <textarea name="prompts" rows="12" placeholder="Has traveled to three continents&#10;Speaks more than two languages&#10;..."></textarea>
          <button type="submit" class="primary">Create game</button>
        </form>
      </section>
    </main>
  </body>
</html>`)
		return nil
	})
}

func AdminGame(view AdminGameView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>`+templ.EscapeString(view.GameName)+` · Admin</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">`+templ.EscapeString(view.GameID)+`</span>
        <h1>`+templ.EscapeString(view.GameName)+`</h1>
        <p>Share the code or the QR below with your players.</p>
        <img class="qr" src="/qr/`+templ.EscapeString(view.GameID)+`" alt="join QR code"/>
      </header>

      <section class="panel">
        <h2>Prompts</h2>
        <ul class="prompts">`)
		for _, prompt := range view.Prompts {
			_, _ = io.WriteString(w, `
          <li>`+templ.EscapeString(prompt.Text)+`</li>`)
		}
		_, _ = io.WriteString(w, `
        </ul>
      </section>

      <section class="panel">
        <h2>Standings</h2>
        <table class="standings">
          <thead><tr><th>Player</th><th>Score</th></tr></thead>
          <tbody>`)
		for _, standing := range view.Standings {
			_, _ = io.WriteString(w, `
            <tr><td>`+templ.EscapeString(standing.Name)+`</td><td>`+strconv.Itoa(standing.Score)+`</td></tr>`)
		}
		_, _ = io.WriteString(w, `
          </tbody>
        </table>
      </section>

      <section class="panel">
        <form method="post" action="/admin/`+templ.EscapeString(view.GameID)+`/delete"
              onsubmit="return confirm('Delete this game and all its players?')">
          <button type="submit" class="danger">Delete game</button>
        </form>
      </section>
    </main>
  </body>
</html>`)
		return nil
	})
}
