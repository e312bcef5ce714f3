package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/pterm/pterm"

	"github.com/sukhmal/RummyScorer-sub000/internal/app"
	"github.com/sukhmal/RummyScorer-sub000/internal/arranger"
	"github.com/sukhmal/RummyScorer-sub000/internal/config"
	"github.com/sukhmal/RummyScorer-sub000/internal/domain"
	"github.com/sukhmal/RummyScorer-sub000/internal/storage/sqlstore"
)

var errInvalidShoe = errors.New("need at least one deck and no negative joker count")

const usage = `usage: rummy <command> [options]

commands:
  hand [-wild R] CARD...          arrange a hand and check the show
  deal [-seed S]                  deal a practice hand and arrange it
  new -variant V [-preset P] NAME...  start a game for the named players
  round GAME PLAYER=RESULT...     record a round (RESULT: points, declared, drop, middle-drop, invalid:N)
  edit GAME ROUND PLAYER=RESULT...  correct a recorded round
  games [-limit N]                list recent games
  show GAME                       print standings and rounds
`

func main() {
	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	rulesPath := envOr("RUMMY_RULES_CONFIG", "data/rules_config.json")
	if err := config.LoadRulesConfig(rulesPath); err != nil {
		logger.Warn("using default rules", "path", rulesPath, "error", err)
	}

	if err := run(context.Background(), logger, os.Args[1], os.Args[2:]); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cmd string, args []string) error {
	switch cmd {
	case "hand":
		return runHand(args)
	case "deal":
		return runDeal(args)
	}

	store, err := sqlstore.Open(ctx, os.Getenv("RUMMY_DB_DRIVER"), os.Getenv("RUMMY_DB_DSN"))
	if err != nil {
		return err
	}
	defer store.Close()
	svc := app.NewService(store, logger)

	switch cmd {
	case "new":
		return runNew(ctx, svc, args)
	case "round", "edit":
		return runRound(ctx, svc, cmd == "edit", args)
	case "games":
		fs := flag.NewFlagSet("games", flag.ExitOnError)
		limit := fs.Int("limit", config.GetListLimit(), "number of games to list")
		fs.Parse(args)
		games, err := store.List(ctx, *limit)
		if err != nil {
			return err
		}
		renderGames(games)
		return nil
	case "show":
		if len(args) != 1 {
			return errors.New("show needs a game id")
		}
		game, err := svc.Load(ctx, args[0])
		if err != nil {
			return err
		}
		renderGame(game)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
}

func runHand(args []string) error {
	fs := flag.NewFlagSet("hand", flag.ExitOnError)
	wild := fs.String("wild", "", "rank of the cut joker, e.g. 7")
	fs.Parse(args)

	hand, err := domain.ParseHand(strings.Join(fs.Args(), " "))
	if err != nil {
		return err
	}
	if *wild != "" {
		rank, err := domain.ParseRank(*wild)
		if err != nil {
			return err
		}
		hand = domain.MarkWildJokers(hand, rank)
	}
	if len(hand) == 0 {
		return errors.New("hand needs at least one card")
	}

	renderAnalysis(arranger.Analyze(hand))
	return nil
}

func runNew(ctx context.Context, svc *app.Service, args []string) error {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	variant := fs.String("variant", string(domain.VariantPool), "pool, points or deals")
	preset := fs.String("preset", "", "pool preset id")
	name := fs.String("name", "", "table name")
	deals := fs.Int("deals", 0, "number of deals (deals variant)")
	pointValue := fs.Int("point-value", 0, "chips per point (points variant)")
	fs.Parse(args)

	seats := make([]app.Seat, 0, fs.NArg())
	for _, n := range fs.Args() {
		seats = append(seats, app.Seat{Name: n})
	}
	cfg := config.ApplyDefaults(domain.GameConfig{
		Variant:       domain.Variant(*variant),
		NumberOfDeals: *deals,
		PointValue:    *pointValue,
	}, *preset)

	game, res, err := svc.StartGame(ctx, *name, cfg, seats)
	if err != nil {
		return err
	}
	if res.PersistErr != nil {
		pterm.Warning.Println("game was not saved: " + res.PersistErr.Error())
	}
	pterm.Success.Printfln("Started %s game %s", game.Config.Variant, game.ID)
	renderGame(game)
	return nil
}

func runRound(ctx context.Context, svc *app.Service, edit bool, args []string) error {
	need := 2
	if edit {
		need = 3
	}
	if len(args) < need {
		return errors.New("missing game id, round id or results")
	}

	table, err := app.OpenTable(ctx, svc, args[0])
	if err != nil {
		return err
	}
	unsubscribe := table.Subscribe(func(state *domain.Game, events []app.Event) {
		renderEvents(state, events)
	})
	defer unsubscribe()

	inputs, err := parseScores(table.State(), args[need-1:])
	if err != nil {
		return err
	}

	var res app.Result
	if edit {
		res, err = table.UpdateRound(ctx, args[1], inputs)
	} else {
		res, err = table.AddRound(ctx, inputs)
	}
	if err != nil {
		return err
	}
	if res.PersistErr != nil {
		pterm.Warning.Println("round was not saved: " + res.PersistErr.Error())
	}
	renderGame(table.State())
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
