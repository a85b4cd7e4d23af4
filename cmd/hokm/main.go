// Command hokm plays a solo game in the terminal: you at the south seat
// against three automated opponents.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/hokmlab/hokm/internal/bot"
	"github.com/hokmlab/hokm/internal/engine"
)

const humanID = "you"

func main() {
	diffFlag := flag.String("difficulty", "", "opponent difficulty: easy, medium or hard")
	seedFlag := flag.Int64("seed", 0, "deal seed, 0 for random")
	flag.Parse()

	pterm.Print("\n")
	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Ho", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("km", pterm.FgLightWhite.ToStyle()),
	).Srender()
	if err == nil {
		pterm.Print(title)
	}

	name, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Enter your name").WithDefaultValue("Player").Show()
	pterm.Println()

	diff, err := pickDifficulty(*diffFlag)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	var cfg engine.Config
	cfg.Seed = *seedFlag
	cfg.Seats[engine.South] = engine.SeatConfig{ID: humanID, Name: name, Human: true}
	cfg.Seats[engine.West] = engine.SeatConfig{ID: "west", Name: "West"}
	cfg.Seats[engine.North] = engine.SeatConfig{ID: "north", Name: "North"}
	cfg.Seats[engine.East] = engine.SeatConfig{ID: "east", Name: "East"}

	partner := cfg.Seats[partnerSeat(engine.South)].Name
	pterm.Info.Printfln("Playing against %s opponents. You and %s are partners; first team to %d tricks wins.", diff, partner, engine.WinningScore)
	game := engine.New(cfg)
	strat := bot.New(diff, rand.New(rand.NewSource(time.Now().UnixNano())))

	for game.Phase() != engine.PhaseFinished {
		switch game.Phase() {
		case engine.PhaseBidding:
			runBidding(game, strat, diff)
		case engine.PhasePlaying:
			runTurn(game, strat, diff)
		}
	}

	st := game.Snapshot()
	winner := engine.TeamRed
	if st.Scores.Black > st.Scores.Red {
		winner = engine.TeamBlack
	}
	pterm.Println()
	if winner == engine.South.Team() {
		pterm.Success.Printfln("Your team wins %d to %d!", st.Scores.ForTeam(winner), st.Scores.ForTeam(other(winner)))
	} else {
		pterm.Error.Printfln("Your team loses %d to %d.", st.Scores.ForTeam(other(winner)), st.Scores.ForTeam(winner))
	}
}

func other(t engine.Team) engine.Team {
	if t == engine.TeamRed {
		return engine.TeamBlack
	}
	return engine.TeamRed
}

// partnerSeat returns the other seat on s's team. Partners sit two
// rotation steps apart, not across.
func partnerSeat(s engine.Seat) engine.Seat {
	for _, o := range engine.AllSeats() {
		if o != s && o.Team() == s.Team() {
			return o
		}
	}
	return s
}

func pickDifficulty(flagValue string) (bot.Difficulty, error) {
	if flagValue != "" {
		return bot.ParseDifficulty(flagValue)
	}
	choice, err := pterm.DefaultInteractiveSelect.
		WithDefaultText("Choose opponent difficulty").
		WithOptions([]string{string(bot.Easy), string(bot.Medium), string(bot.Hard)}).
		Show()
	if err != nil {
		return "", err
	}
	return bot.ParseDifficulty(choice)
}

func runBidding(game *engine.Game, strat bot.Strategy, diff bot.Difficulty) {
	st := game.Snapshot()
	leader := game.CurrentSeat()
	pterm.Println()
	pterm.Info.Printfln("Round %d: %s leads and picks the hokm.", game.Round(), st.Players[leader].Name)

	var suit engine.Suit
	if leader == engine.South {
		renderHand(st.Players[engine.South].Hand, nil)
		options := make([]string, 0, 4)
		for _, s := range engine.Suits() {
			options = append(options, s.String())
		}
		choice, err := pterm.DefaultInteractiveSelect.
			WithDefaultText("Choose the hokm suit").
			WithOptions(options).
			Show()
		if err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
		suit, _ = engine.ParseSuit(choice)
	} else {
		time.Sleep(diff.Delay())
		suit = strat.ChooseHokm(st, leader)
	}
	if err := game.SetHokm(suit); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	pterm.Info.Printfln("Hokm is %s.", colorSuit(suit))
}

func runTurn(game *engine.Game, strat bot.Strategy, diff bot.Difficulty) {
	seat := game.CurrentSeat()
	st := game.Snapshot()

	var idx int
	if seat == engine.South {
		renderTable(st)
		legal := st.LegalPlays(engine.South)
		hand := st.Players[engine.South].Hand
		options := make([]string, len(legal))
		for i, li := range legal {
			options[i] = cardLabel(hand[li])
		}
		choice, err := pterm.DefaultInteractiveSelect.
			WithDefaultText("Your play").
			WithOptions(options).
			WithMaxHeight(len(options)).
			Show()
		if err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
		idx = legal[0]
		for i, o := range options {
			if o == choice {
				idx = legal[i]
				break
			}
		}
	} else {
		time.Sleep(diff.Delay())
		idx = strat.SelectCard(st, seat)
	}

	res, err := game.PlayCard(st.Players[seat].ID, idx)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	pterm.Printfln("%s plays %s", st.Players[seat].Name, cardLabel(res.Card))
	if res.TrickComplete {
		after := game.Snapshot()
		pterm.Info.Printfln("%s takes the trick. Score: you %d, them %d.",
			after.Players[res.TrickWinner].Name,
			after.Scores.ForTeam(engine.South.Team()),
			after.Scores.ForTeam(other(engine.South.Team())))
	}
	if res.RoundComplete && !res.GameOver {
		pterm.Info.Printfln("Round over, dealing again.")
	}
}

func renderTable(st *engine.State) {
	trick := ""
	for _, p := range st.Trick.Plays {
		trick += fmt.Sprintf("%s: %s  ", st.Players[p.Seat].Name, cardLabel(p.Card))
	}
	if trick == "" {
		trick = "(you lead)"
	}
	hokm := "?"
	if suit, ok := st.HokmSuit(); ok {
		hokm = colorSuit(suit)
	}
	box := pterm.DefaultBox.WithLeftPadding(2).WithRightPadding(2)
	pterm.Println()
	pterm.Println(box.WithTitle("table").Sprintf("hokm: %s\ntrick: %s\nyou %d | them %d",
		hokm, trick,
		st.Scores.ForTeam(engine.South.Team()),
		st.Scores.ForTeam(other(engine.South.Team()))))
	renderHand(st.Players[engine.South].Hand, st.LegalPlays(engine.South))
}

func renderHand(hand []engine.Card, legal []int) {
	legalSet := make(map[int]bool, len(legal))
	for _, i := range legal {
		legalSet[i] = true
	}
	line := ""
	for i, c := range hand {
		label := cardLabel(c)
		if legal != nil && !legalSet[i] {
			label = pterm.Gray(c.String())
		}
		line += label + "  "
	}
	pterm.Println("hand: " + line)
}

func cardLabel(c engine.Card) string {
	if c.Suit == engine.Hearts || c.Suit == engine.Diamonds {
		return pterm.LightRed(c.String())
	}
	return pterm.LightWhite(c.String())
}

func colorSuit(s engine.Suit) string {
	if s == engine.Hearts || s == engine.Diamonds {
		return pterm.LightRed(s.String())
	}
	return pterm.LightWhite(s.String())
}
