package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/terrarium/camera"
	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/game"
	"github.com/pthm-cable/terrarium/renderer"
	"github.com/pthm-cable/terrarium/server"
	"github.com/pthm-cable/terrarium/ui"
)

// remoteInput collects commands arriving from websocket viewers. The hub's
// read loops run on their own goroutines; the main loop drains this under the
// mutex once per frame.
type remoteInput struct {
	mu        sync.Mutex
	threat    *game.ThreatPoint
	setPause  bool
	pauseWant bool
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats windows via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	serveAddr := flag.String("serve", "", "Websocket listen address, e.g. :8080 (empty = off)")
	spriteDir := flag.String("sprites", "", "Sprite directory (empty = use config)")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	g, err := game.New(game.Options{
		Config:    cfg,
		Seed:      rngSeed,
		OutputDir: *outputDir,
		LogStats:  *logStats,
	})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	remote := &remoteInput{}
	var hub *server.Hub
	if *serveAddr != "" {
		hub = server.NewHub(map[string]any{
			"bounds": cfg.Bounds,
			"dt":     cfg.Physics.DT,
		})
		hub.OnThreat = func(x, y float32, active bool) {
			remote.mu.Lock()
			if active {
				remote.threat = &game.ThreatPoint{X: x, Y: y}
			} else {
				remote.threat = nil
			}
			remote.mu.Unlock()
		}
		hub.OnPause = func(paused bool) {
			remote.mu.Lock()
			remote.setPause = true
			remote.pauseWant = paused
			remote.mu.Unlock()
		}

		mux := http.NewServeMux()
		mux.Handle("/ws", hub)
		go func() {
			slog.Info("websocket server listening", "addr", *serveAddr)
			if err := http.ListenAndServe(*serveAddr, mux); err != nil {
				slog.Error("websocket server failed", "error", err)
			}
		}()
	}

	slog.Info("starting simulation",
		"seed", rngSeed,
		"headless", *headless,
		"max_ticks", *maxTicks,
	)

	if *headless {
		runHeadless(g, cfg, hub, remote, *maxTicks)
		return
	}
	runWindowed(g, cfg, hub, remote, *maxTicks, *spriteDir)
}

// applyRemote folds queued viewer commands plus the local hand threat into
// the game before a step.
func applyRemote(g *game.Game, remote *remoteInput, hand *game.ThreatPoint) {
	var threats []game.ThreatPoint

	remote.mu.Lock()
	if remote.threat != nil {
		threats = append(threats, *remote.threat)
	}
	if remote.setPause {
		g.SetPaused(remote.pauseWant)
		remote.setPause = false
	}
	remote.mu.Unlock()

	if hand != nil {
		threats = append(threats, *hand)
	}
	g.SetThreats(threats)
}

func runHeadless(g *game.Game, cfg *config.Config, hub *server.Hub, remote *remoteInput, maxTicks int) {
	pace := hub != nil // real-time pacing only matters with viewers attached
	stepDur := time.Duration(float64(time.Second) * cfg.Physics.DT)

	for {
		applyRemote(g, remote, nil)
		g.Step()

		if hub != nil && cfg.Server.BroadcastEvery > 0 && g.Tick()%int32(cfg.Server.BroadcastEvery) == 0 {
			hub.Broadcast(map[string]any{
				"type":   "snapshot",
				"tick":   g.Tick(),
				"agents": g.Snapshot(),
			})
		}

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return
		}
		if pace {
			time.Sleep(stepDur)
		}
	}
}

func runWindowed(g *game.Game, cfg *config.Config, hub *server.Hub, remote *remoteInput, maxTicks int, spriteDir string) {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Terrarium")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	b := g.Bounds()
	cam := camera.New(float32(cfg.Screen.Width), float32(cfg.Screen.Height),
		b.MinX, b.MaxX, b.MinY, b.MaxY)

	if spriteDir == "" {
		spriteDir = cfg.Sprites.Dir
	}
	sprites := renderer.LoadSprites(spriteDir)
	defer sprites.Unload()
	terrainR := renderer.NewTerrainRenderer()
	hud := ui.NewHUD()
	panel := ui.NewPanel(int32(cfg.Screen.Width))

	for !rl.WindowShouldClose() {
		// Input
		if rl.IsKeyPressed(rl.KeySpace) {
			g.TogglePause()
		}
		if rl.IsKeyPressed(rl.KeyP) {
			panel.Visible = !panel.Visible
		}
		if rl.IsKeyPressed(rl.KeyR) {
			cam.Reset()
		}
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			cam.ZoomBy(1 + wheel*0.1)
		}
		if rl.IsMouseButtonDown(rl.MouseRightButton) {
			d := rl.GetMouseDelta()
			cam.Pan(-d.X, -d.Y)
		}

		// Holding the left button projects the cursor into the world as a
		// hand threat, the desktop stand-in for the depth-camera hand.
		var hand *game.ThreatPoint
		if rl.IsMouseButtonDown(rl.MouseLeftButton) && !panel.Visible {
			m := rl.GetMousePosition()
			wx, wy := cam.ScreenToWorld(m.X, m.Y)
			hand = &game.ThreatPoint{X: wx, Y: wy}
		}

		applyRemote(g, remote, hand)
		g.Step()

		if hub != nil && cfg.Server.BroadcastEvery > 0 && g.Tick()%int32(cfg.Server.BroadcastEvery) == 0 {
			hub.Broadcast(map[string]any{
				"type":   "snapshot",
				"tick":   g.Tick(),
				"agents": g.Snapshot(),
			})
		}

		// Draw
		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		terrainR.Draw(g.Field(), cam)
		sprites.DrawAgents(g.Snapshot(), cam)

		clients := -1
		if hub != nil {
			clients = hub.ClientCount()
		}
		hud.Draw(ui.HUDData{
			Title:      "Terrarium",
			Herbivores: g.HerbivoreCount(),
			Predators:  g.PredatorCount(),
			Alive:      g.AliveCount(),
			Tick:       g.Tick(),
			FPS:        rl.GetFPS(),
			Paused:     g.Paused(),
			Clients:    clients,
		})
		hud.DrawControls(int32(cfg.Screen.Height),
			"SPACE pause | P panel | R reset view | LMB scare | RMB drag pan | wheel zoom")
		panel.Draw(g)

		rl.EndDrawing()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
}
