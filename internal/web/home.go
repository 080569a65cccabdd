package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Home() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Human Bingo</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Human Bingo</span>
        <h1>Find the person. Mark the square.</h1>
        <p>Enter the game code from your host and your name to play.</p>
      </header>

      <section class="panel" id="joinPanel">
        <form id="joinForm" class="join-form">
          <input name="code" placeholder="Game code" autocomplete="off" required/>
          <input name="name" placeholder="Your name" autocomplete="name" required/>
          <button type="submit" class="primary">Join game</button>
        </form>
        <div id="joinResult" class="result"></div>
      </section>

      <section class="panel hidden" id="gamePanel">
        <div id="board" class="board"></div>
        <h2>Leaderboard</h2>
        <ol id="leaderboard" class="leaderboard"></ol>
      </section>
    </main>

    <script>
      const joinForm = document.getElementById("joinForm");
      const joinResult = document.getElementById("joinResult");
      const gamePanel = document.getElementById("gamePanel");
      const boardEl = document.getElementById("board");
      const leaderboardEl = document.getElementById("leaderboard");
      let ws = null;
      let gameId = null;
      let playerId = null;

      const params = new URLSearchParams(window.location.search);
      if (params.get("game")) {
        joinForm.elements.code.value = params.get("game");
      }

      joinForm.addEventListener("submit", async (event) => {
        event.preventDefault();
        const code = joinForm.elements.code.value.trim().toUpperCase();
        const name = joinForm.elements.name.value.trim();
        joinResult.textContent = "Joining...";
        const res = await fetch("/join", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({ game_id: code, name: name }),
        });
        const data = await res.json();
        if (!res.ok) {
          joinResult.textContent = data.error || "Could not join.";
          return;
        }
        gameId = code;
        playerId = data.player_id;
        joinResult.textContent = "";
        await loadBoard();
        connect();
        gamePanel.classList.remove("hidden");
      });

      async function loadBoard() {
        const res = await fetch("/board/" + gameId);
        const prompts = await res.json();
        boardEl.innerHTML = "";
        for (const prompt of prompts) {
          const cell = document.createElement("button");
          cell.className = "cell";
          cell.textContent = prompt.text;
          cell.addEventListener("click", () => {
            const partner = window.prompt("Who did you meet? (optional)") || "";
            ws.send(JSON.stringify({
              type: "mark",
              player_id: playerId,
              prompt_id: prompt.id,
              partner: partner,
            }));
            cell.classList.add("marked");
          });
          boardEl.appendChild(cell);
        }
      }

      function connect() {
        const proto = window.location.protocol === "https:" ? "wss" : "ws";
        ws = new WebSocket(proto + "://" + window.location.host + "/ws");
        ws.addEventListener("open", () => {
          ws.send(JSON.stringify({ type: "join", game_id: gameId }));
        });
        ws.addEventListener("message", (event) => {
          const msg = JSON.parse(event.data);
          if (msg.type === "leaderboard") {
            renderLeaderboard(msg.leaderboard);
          }
        });
        ws.addEventListener("close", () => {
          setTimeout(connect, 2000);
        });
      }

      function renderLeaderboard(entries) {
        leaderboardEl.innerHTML = "";
        for (const entry of entries) {
          const li = document.createElement("li");
          li.textContent = entry.name + ": " + entry.score;
          leaderboardEl.appendChild(li);
        }
      }
    </script>
  </body>
</html>`)
		return nil
	})
}
