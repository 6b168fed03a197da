package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/swof/bau-api-go/pkg/config"
	"github.com/swof/bau-api-go/pkg/database"
	"github.com/swof/bau-api-go/pkg/models"
	"github.com/swof/bau-api-go/pkg/roster"
	"github.com/swof/bau-api-go/pkg/scheduler"
)

const usage = `Usage: rosterctl <command> [args]

Commands:
  list                  print the roster in storage order
  add <name> [id]       append an engineer (a uuid is generated when id is omitted)
  remove <id>           remove an engineer
  import <file.yaml>    append the engineers of a roster file
  pair <date>           print the engineers on duty at an ISO-8601 date
`

func main() {
	// Load .env from project root
	config.LoadDotEnv()

	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	if err := run(context.Background(), cfg, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func openStore(cfg *config.Config) (*database.Store, error) {
	db, err := database.InitDB(database.Options{
		DatabaseURL: cfg.DatabaseURL,
		DataPath:    cfg.DataPath,
		Silent:      true,
	})
	if err != nil {
		return nil, err
	}
	return database.NewStore(db, cfg.EngineersTable, cfg.RosterLimit)
}

func run(ctx context.Context, cfg *config.Config, cmd string, args []string, out io.Writer) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	switch cmd {
	case "list":
		members, err := store.FetchRoster(ctx)
		if err != nil {
			return err
		}
		for i, m := range members {
			fmt.Fprintf(out, "%2d  %s  %s\n", i+1, m.ID, m.Name)
		}
		return nil

	case "add":
		if len(args) < 1 || strings.TrimSpace(args[0]) == "" {
			return fmt.Errorf("add needs a name")
		}
		m := models.Member{Name: strings.TrimSpace(args[0]), ID: uuid.NewString()}
		if len(args) > 1 {
			m.ID = args[1]
		}
		if err := store.AddEngineer(ctx, m); err != nil {
			return err
		}
		fmt.Fprintf(out, "Added %s (%s)\n", m.Name, m.ID)
		return nil

	case "remove":
		if len(args) != 1 {
			return fmt.Errorf("remove needs an id")
		}
		if err := store.RemoveEngineer(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %s\n", args[0])
		return nil

	case "import":
		if len(args) != 1 {
			return fmt.Errorf("import needs a roster file")
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		doc, err := roster.Decode(data)
		if err != nil {
			return err
		}
		for i := range doc.Engineers {
			if doc.Engineers[i].ID == "" {
				doc.Engineers[i].ID = uuid.NewString()
			}
		}
		added, err := store.ImportRoster(ctx, doc.Engineers)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Imported %d of %d engineers\n", added, len(doc.Engineers))
		return nil

	case "pair":
		if len(args) != 1 {
			return fmt.Errorf("pair needs a date")
		}
		strategy, err := scheduler.StrategyByName(cfg.SeamStrategy, nil)
		if err != nil {
			return err
		}
		svc := scheduler.NewService(store, scheduler.NewScheduler(cfg.SlotDuration, strategy))
		duty, _, err := svc.Lookup(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s - %s: %s (%s), %s (%s)\n",
			duty.Start.Format("2006-01-02 15:04"), duty.End.Format("2006-01-02 15:04"),
			duty.Pair.First.Name, duty.Pair.First.ID,
			duty.Pair.Second.Name, duty.Pair.Second.ID)
		return nil

	default:
		return fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
	}
}
