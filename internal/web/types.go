package web

type AdminPrompt struct {
	ID   string
	Text string
}

type AdminStanding struct {
	Name  string
	Score int
}

type AdminGameView struct {
	GameID    string
	GameName  string
	Prompts   []AdminPrompt
	Standings []AdminStanding
}
