package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/acimap/kernel/internal/config"
	coresys "github.com/acimap/kernel/internal/core/system"
	"github.com/acimap/kernel/internal/data"
	"github.com/acimap/kernel/internal/objects"
	"github.com/acimap/kernel/internal/persist"
	"github.com/acimap/kernel/internal/scripting"
	"github.com/acimap/kernel/internal/sim"
	"github.com/acimap/kernel/internal/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

var printer = message.NewPrinter(language.English)

func printBanner(scenario string, width, height int) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              acimap  v0.1.0               \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m        colony simulation kernel           \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mscenario:\033[0m %s \033[90m(%dx%d)\033[0m\n\n", scenario, width, height)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, value any) {
	numStr := printer.Sprint(value)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main loop ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := config.Path("config/acimap.toml")
	cfg, err := config.Load(cfgPath)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Build the scenario
	scenario := data.DefaultScenario()
	if cfg.Scenario.Path != "" {
		if scenario, err = data.LoadScenario(cfg.Scenario.Path); err != nil {
			return fmt.Errorf("scenario: %w", err)
		}
	}
	s, err := scenario.Build(nil, log.Named("sim"))
	if err != nil {
		return fmt.Errorf("scenario: %w", err)
	}
	printBanner(scenario.Name, scenario.Width, scenario.Height)

	printSection("world")
	printStat("tiles", s.Grid().Len())
	printStat("environment objects", objects.Count[objects.EnvironmentObject](s.Objects()))
	printStat("buildings", objects.Count[objects.Building](s.Objects()))
	printStat("characters", objects.Count[objects.Character](s.Objects()))
	fmt.Println()

	// 4. Scripting
	var engine *scripting.Engine
	if cfg.Scenario.Script != "" {
		printSection("script")
		engine = scripting.NewEngine(s, log.Named("lua"))
		defer engine.Close()
		if err := engine.Load(cfg.Scenario.Script); err != nil {
			return fmt.Errorf("script: %w", err)
		}
		if err := engine.Setup(); err != nil {
			return fmt.Errorf("script setup: %w", err)
		}
		printOK(fmt.Sprintf("loaded %s", cfg.Scenario.Script))
		fmt.Println()
	}

	// 5. Database
	var snapshots *system.SnapshotSystem
	if cfg.Database.Enabled {
		printSection("database")
		snap, closeDB, err := openSnapshots(cfg, scenario, s, log)
		if err != nil {
			return err
		}
		defer closeDB()
		snapshots = snap
		fmt.Println()
	}

	// 6. Systems
	dispatch := system.NewEventDispatchSystem(s.Bus())
	system.LogEvents(s.Bus(), log.Named("event"))

	runner := coresys.NewRunner()
	runner.Register(dispatch)
	if engine != nil {
		runner.Register(system.NewScriptSystem(s, engine))
	}
	runner.Register(system.NewPhysicsSystem(s, cfg.Simulation.TimeScale))
	runner.Register(system.NewMovementSystem(s, cfg.Simulation.TimeScale))
	if snapshots != nil {
		runner.Register(snapshots)
	}

	// 7. Run
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	tick := time.NewTicker(cfg.Simulation.TickRate)
	defer tick.Stop()
	frame := time.NewTicker(cfg.Simulation.FrameRate)
	defer frame.Stop()

	printSection("running")
	printReady(fmt.Sprintf("physics tick %s, frame %s, time scale %g",
		cfg.Simulation.TickRate, cfg.Simulation.FrameRate, cfg.Simulation.TimeScale))
	fmt.Println()

	shutdown := func(reason string) {
		dispatch.Flush()
		if snapshots != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := snapshots.Save(ctx); err != nil {
				log.Error("final snapshot failed", zap.Error(err))
			}
		}
		logStats(log, s.Stats())
		log.Info("simulation stopped", zap.String("reason", reason))
	}

	for {
		select {
		case <-tick.C:
			runner.Tick(cfg.Simulation.TickRate)
			if cfg.Simulation.MaxTicks > 0 && s.Ticks() >= cfg.Simulation.MaxTicks {
				shutdown("max ticks reached")
				return nil
			}
		case <-frame.C:
			runner.TickPhase(coresys.PhaseFrame, cfg.Simulation.FrameRate)
		case sig := <-shutdownCh:
			shutdown(sig.String())
			return nil
		}
	}
}

// openSnapshots connects, migrates and registers the run. The returned
// function finishes the run and closes the pool.
func openSnapshots(cfg *config.Config, scenario *data.Scenario, s *sim.Simulation, log *zap.Logger) (*system.SnapshotSystem, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(ctx, cfg.Database, log.Named("db"))
	if err != nil {
		return nil, nil, fmt.Errorf("database: %w", err)
	}
	printOK("PostgreSQL connected")

	if err := db.RunMigrations(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}
	printOK("migrations applied")

	runs := persist.NewRunRepo(db)
	run := persist.NewRunInfo(scenario.Name, scenario.Width, scenario.Height)
	if err := runs.Start(ctx, run); err != nil {
		db.Close()
		return nil, nil, err
	}
	printOK(fmt.Sprintf("run %s", run.ID))

	snap := system.NewSnapshotSystem(s, persist.NewSnapshotRepo(db), run.ID, log.Named("snapshot"),
		cfg.Snapshot.IntervalTicks, cfg.Snapshot.StoreTiles)

	closeDB := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := runs.Finish(ctx, run.ID, s.Ticks()); err != nil {
			log.Error("finish run", zap.Error(err))
		}
		db.Close()
	}
	return snap, closeDB, nil
}

func logStats(log *zap.Logger, st sim.Stats) {
	log.Info("final state",
		zap.Uint64("ticks", st.Tick),
		zap.Float64("time", st.Time),
		zap.Float64("air", st.Totals.Air()),
		zap.Float64("oxygen", st.Totals.Oxygen),
		zap.Float64("fumes", st.Totals.Fumes),
		zap.Float64("water", st.Totals.Water),
		zap.Float64("lava", st.Totals.Lava),
		zap.Int("working", st.Working),
		zap.String("checksum", fmt.Sprintf("%x", st.Checksum[:8])))
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
