// Command server runs the tribal-village simulation as a long-lived
// process: it steps the engine on a fixed tick, drives the scripted
// baseline controller, optionally persists run/episode records and
// publishes tick snapshots, and serves a WebSocket spectator stream.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/lucasdow/tribalvillage/internal/config"
	"github.com/lucasdow/tribalvillage/internal/game"
	"github.com/lucasdow/tribalvillage/internal/game/controller"
	"github.com/lucasdow/tribalvillage/internal/game/worldgen"
	"github.com/lucasdow/tribalvillage/internal/store"
	"github.com/lucasdow/tribalvillage/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	noDB := flag.Bool("no-db", false, "run without database (in-memory only)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Failed to load config from %s, using defaults: %v", *configPath, err)
		cfg = config.Default()
	}

	var pg *store.Postgres
	var rd *store.Redis
	if *noDB || cfg.Dev.Enabled {
		log.Println("Running without database (in-memory mode)")
	} else {
		pg, err = store.NewPostgres(cfg.Database.PostgresURL)
		if err != nil {
			log.Printf("Warning: Failed to connect to PostgreSQL: %v", err)
		}
		rd, err = store.NewRedis(cfg.Database.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v", err)
		}
	}
	defer pg.Close()
	defer rd.Close()

	hub := telemetry.NewHub()
	go hub.Run()

	mapSize := cfg.Sim.GetMapSize()
	engine := game.NewEngine(game.Config{
		Width: mapSize, Height: mapSize,
		NumTeams: cfg.Sim.NumTeams, AgentsPerTeam: cfg.Sim.AgentsPerTeam,
		Seed:              cfg.Sim.Map.Seed,
		ObservationRadius: cfg.Balance.Agent.ObservationRadius,
	})

	painter := worldgen.NewPainter(cfg.Sim.Map.Seed)
	terrain, biome := painter.Paint(mapSize, mapSize)
	engine.ApplyTerrain(terrain, biome)

	ctrl := controller.NewController(cfg.Sim.AgentsPerTeam)
	ctrl.Reset(cfg.Sim.NumTeams*cfg.Sim.AgentsPerTeam, engine)

	runID := uuid.New()
	if pg.IsConnected() {
		ctx := context.Background()
		if _, err := pg.CreateRun(ctx, store.RunRecord{
			ID: runID, Seed: cfg.Sim.Map.Seed, NumTeams: cfg.Sim.NumTeams,
			MapWidth: mapSize, MapHeight: mapSize,
		}); err != nil {
			log.Printf("Warning: failed to record run: %v", err)
		}
	}

	stop := make(chan struct{})
	go runTickLoop(engine, ctrl, cfg, rd, hub, runID, stop)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	telemetryHandler := telemetry.NewHandler(hub, nil)
	mux.HandleFunc("/ws/spectate", func(w http.ResponseWriter, r *http.Request) {
		telemetryHandler.ServeWS(w, r, runID)
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	close(stop)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}

// runTickLoop drives the engine's own Step at a fixed cadence: the
// scripted controller decides every agent's action, SetActions queues
// them, Step advances exactly one tick, and the resulting stats are
// published for spectators.
func runTickLoop(e *game.Engine, ctrl *controller.Controller, cfg *config.Config, rd *store.Redis, hub *telemetry.Hub, runID uuid.UUID, stop <-chan struct{}) {
	interval := cfg.Sim.TickDuration
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	total := cfg.Sim.NumTeams * cfg.Sim.AgentsPerTeam
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			actions := make(map[int]game.EncodedAction, total)
			for id := 0; id < total; id++ {
				actions[id] = ctrl.Decide(e, id)
			}
			if err := e.SetActions(actions); err != nil {
				log.Printf("SetActions error: %v", err)
				continue
			}
			e.Step()

			stats := e.Stats()
			statsJSON, _ := json.Marshal(stats)
			hub.BroadcastTick(runID, telemetry.TickUpdate{Type: "tick", Tick: stats.Tick, RunID: runID, Stats: statsJSON})
			if rd.IsConnected() {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				err := rd.PublishTick(ctx, runID, store.TickSnapshot{Tick: stats.Tick, Stats: statsJSON})
				cancel()
				if err != nil {
					log.Printf("PublishTick error: %v", err)
				}
			}
		}
	}
}
