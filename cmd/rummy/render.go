package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/sukhmal/RummyScorer-sub000/internal/app"
	"github.com/sukhmal/RummyScorer-sub000/internal/arranger"
	"github.com/sukhmal/RummyScorer-sub000/internal/domain"
	"github.com/sukhmal/RummyScorer-sub000/internal/ports"
)

func cardsString(cards []domain.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func renderAnalysis(a arranger.Analysis) {
	data := pterm.TableData{{"Group", "Cards"}}
	for _, m := range a.Melds {
		data = append(data, []string{string(m.Type), cardsString(m.Cards)})
	}
	if len(a.Deadwood) > 0 {
		data = append(data, []string{"deadwood", cardsString(a.Deadwood)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()

	if a.Result.ClosingCard != nil {
		pterm.Info.Printfln("Closing card: %s", a.Result.ClosingCard.String())
	}
	if a.Result.IsValid {
		pterm.Success.Println("Ready to declare")
		return
	}
	pterm.Warning.Printfln("Deadwood points: %d", a.Result.DeadwoodPoints)
	for _, e := range a.Result.Errors {
		pterm.Warning.Println(e)
	}
}

func renderGame(g *domain.Game) {
	title := g.ID
	if g.Name != "" {
		title = g.Name + " (" + g.ID + ")"
	}
	pterm.DefaultSection.Println(title)
	pterm.Info.Printfln("%s, deal %d, %s", g.Config.Variant, g.CurrentDeal, g.Status())

	standings := pterm.TableData{{"Player", "Score", ""}}
	for _, p := range g.Standings() {
		mark := ""
		switch {
		case p.ID == g.Winner:
			mark = pterm.LightGreen("winner")
		case p.IsEliminated:
			mark = pterm.LightRed("out")
		}
		standings = append(standings, []string{p.Name, strconv.Itoa(p.Score), mark})
	}
	pterm.DefaultTable.WithHasHeader().WithData(standings).Render()

	if len(g.Rounds) == 0 {
		return
	}
	header := []string{"#", "Round"}
	for _, p := range g.Players {
		header = append(header, p.Name)
	}
	rounds := pterm.TableData{header}
	for i, r := range g.Rounds {
		row := []string{strconv.Itoa(i + 1), r.ID}
		for _, p := range g.Players {
			cell := "-"
			if pts, ok := r.Scores[p.ID]; ok {
				cell = strconv.Itoa(pts)
			}
			if p.ID == r.Winner {
				cell = pterm.LightGreen("R")
			}
			row = append(row, cell)
		}
		rounds = append(rounds, row)
	}
	pterm.DefaultTable.WithHasHeader().WithData(rounds).Render()

	if g.Config.Variant == domain.VariantPoints {
		net := g.Settlement()
		data := pterm.TableData{{"Player", "Net"}}
		for _, p := range g.Players {
			data = append(data, []string{p.Name, fmt.Sprintf("%+d", net[p.ID])})
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}
}

func renderEvents(g *domain.Game, events []app.Event) {
	name := func(id string) string {
		if p, ok := g.Player(id); ok {
			return p.Name
		}
		return id
	}
	for _, ev := range events {
		switch p := ev.Payload.(type) {
		case app.PlayerPayload:
			if ev.Kind == app.EventPlayerEliminated {
				pterm.Warning.Printfln("%s is out with %d", name(p.PlayerID), p.Score)
			} else {
				pterm.Info.Printfln("%s is back in with %d", name(p.PlayerID), p.Score)
			}
		case app.GameCompletedPayload:
			pterm.Success.Printfln("%s wins", name(p.Winner))
		case app.GameReopenedPayload:
			pterm.Info.Printfln("%s no longer wins; the game is open again", name(p.PreviousWinner))
		case app.RoundPayload:
			pterm.Info.Printfln("%s round %s", strings.ReplaceAll(string(ev.Kind), "_", " "), p.Round.ID)
		}
	}
}

func renderGames(games []ports.GameSummary) {
	if len(games) == 0 {
		pterm.Info.Println("No games yet")
		return
	}
	data := pterm.TableData{{"ID", "Name", "Variant", "Status", "Players", "Rounds", "Winner", "Started"}}
	for _, g := range games {
		data = append(data, []string{
			g.ID, g.Name, string(g.Variant), string(g.Status),
			strconv.Itoa(g.Players), strconv.Itoa(g.Rounds), g.Winner,
			g.StartedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
