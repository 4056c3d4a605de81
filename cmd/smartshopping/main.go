package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/lo7ol3/SmartShopping/internal/app"
	"github.com/lo7ol3/SmartShopping/internal/capture"
	"github.com/lo7ol3/SmartShopping/internal/catalog"
	"github.com/lo7ol3/SmartShopping/internal/config"
	"github.com/lo7ol3/SmartShopping/internal/detector"
	"github.com/lo7ol3/SmartShopping/internal/server"
	"github.com/lo7ol3/SmartShopping/internal/store"
	"github.com/lo7ol3/SmartShopping/internal/tray"
)

func main() {
	fmt.Println("SmartShopping - Hands-Free Checkout Assistant")

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}
	cfg := config.Load()

	// Initialize the store and seed the price catalog from disk
	st, err := store.New(cfg.Store.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	if err := seedPrices(st, cfg.Store.PricesPath); err != nil {
		log.Printf("Price seeding skipped: %v", err)
	}

	prices, err := st.Prices().AsMap()
	if err != nil {
		log.Fatalf("Failed to load price catalog: %v", err)
	}
	if len(prices) == 0 {
		log.Println("Price catalog is empty; detections will not verify")
	}

	// Build the detector; the assistant still runs without one, with
	// scanning reported unavailable.
	var model detector.Model
	m, err := detector.NewYOLOModel(detector.Config{
		ModelPath: cfg.Detector.ModelPath,
		LabelPath: cfg.Detector.LabelPath,
		InputSize: cfg.Detector.InputSize,
	})
	if err != nil {
		log.Printf("Detector unavailable: %v", err)
	} else {
		model = m
	}

	camera := capture.NewCamera(cfg.Camera.DeviceID)

	// The tray doubles as the assistant's display surface: cart total and
	// scanner text show up as menu lines.
	t := tray.New()

	var a *app.App
	a = app.New(app.Config{
		Catalog:         catalog.FromMap(prices),
		Camera:          camera,
		Model:           model,
		UI:              tray.NewUI(t, func() float64 { return a.Cart().Total() }),
		CameraFPS:       cfg.Camera.FPS,
		ConfThreshold:   float32(cfg.Detector.ConfThreshold),
		Selection:       detector.SelectionPolicy(cfg.Detector.Selection),
		StabilityWindow: millis(cfg.Stability.WindowMs),
		SpeakDelay:      millis(cfg.Speech.SpeakDelayMs),
		ListenRearm:     millis(cfg.Speech.ListenRearmMs),
		DialogTimeout:   millis(cfg.Dialog.TimeoutMs),
	})

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start assistant: %v", err)
	}
	defer a.Stop()

	// Configure and start the server
	srv := server.New(server.Config{
		StaticDir: cfg.Server.StaticDir,
		Store:     st,
		Camera:    camera,
		App:       a,
	})

	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(cfg.Server.Addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// The tray owns the main goroutine; quitting it shuts everything down.
	t.OnScan(a.StartScan)
	t.OnDashboard(func() {
		log.Printf("Dashboard available at http://localhost%s/", cfg.Server.Addr)
	})
	t.OnQuit(func() {
		log.Println("Shutting down")
	})
	t.Run()
}

// seedPrices imports the JSON price document into the store. A missing file
// is not fatal; the store keeps whatever it already has.
func seedPrices(st *store.Store, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	c, err := catalog.LoadFile(path)
	if err != nil {
		return err
	}

	if err := st.Prices().Import(c.Map()); err != nil {
		return err
	}

	log.Printf("Imported %d prices from %s", c.Len(), path)
	return nil
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
