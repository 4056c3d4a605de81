// Package config loads environment-driven configuration for the
// SmartShopping checkout assistant.
package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all tunable settings for the application.
type Config struct {
	Server struct {
		Addr      string
		StaticDir string
	}
	Camera struct {
		DeviceID int
		FPS      int
	}
	Detector struct {
		ModelPath     string
		LabelPath     string
		InputSize     int
		ConfThreshold float64
		// Selection chooses which qualifying detection feeds the
		// stability filter: "first" (anchor order) or "best"
		// (highest confidence).
		Selection string
	}
	Stability struct {
		WindowMs int
	}
	Speech struct {
		// SpeakDelayMs approximates prompt completion when the speaker
		// cannot report it.
		SpeakDelayMs int
		// ListenRearmMs is the pause before listening restarts after a
		// prompt finishes.
		ListenRearmMs int
	}
	Dialog struct {
		// TimeoutMs cancels a pending dialog after this long with no
		// reply. 0 disables the timeout.
		TimeoutMs int
	}
	Store struct {
		DBPath     string
		PricesPath string
	}
}

// Load reads configuration from the environment with defaults.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.static_dir", "")

	v.SetDefault("camera.device_id", 0)
	v.SetDefault("camera.fps", 15)

	v.SetDefault("detector.model_path", "models/grocery.onnx")
	v.SetDefault("detector.label_path", "models/labels.txt")
	v.SetDefault("detector.input_size", 640)
	v.SetDefault("detector.conf_threshold", 0.4)
	v.SetDefault("detector.selection", "first")

	v.SetDefault("stability.window_ms", 5000)

	v.SetDefault("speech.speak_delay_ms", 4500)
	v.SetDefault("speech.listen_rearm_ms", 600)

	v.SetDefault("dialog.timeout_ms", 0)

	v.SetDefault("store.db_path", "smartshopping.db")
	v.SetDefault("store.prices_path", "prices.json")

	// Map envs
	v.BindEnv("server.addr", "HTTP_ADDR")
	v.BindEnv("server.static_dir", "STATIC_DIR")

	v.BindEnv("camera.device_id", "CAMERA_ID")
	v.BindEnv("camera.fps", "CAMERA_FPS")

	v.BindEnv("detector.model_path", "MODEL_PATH")
	v.BindEnv("detector.label_path", "LABEL_PATH")
	v.BindEnv("detector.input_size", "MODEL_INPUT_SIZE")
	v.BindEnv("detector.conf_threshold", "CONF_THRESHOLD")
	v.BindEnv("detector.selection", "DETECTION_SELECTION")

	v.BindEnv("stability.window_ms", "STABILITY_WINDOW_MS")

	v.BindEnv("speech.speak_delay_ms", "SPEAK_DELAY_MS")
	v.BindEnv("speech.listen_rearm_ms", "LISTEN_REARM_MS")

	v.BindEnv("dialog.timeout_ms", "DIALOG_TIMEOUT_MS")

	v.BindEnv("store.db_path", "DB_PATH")
	v.BindEnv("store.prices_path", "PRICES_PATH")

	var c Config
	c.Server.Addr = v.GetString("server.addr")
	c.Server.StaticDir = v.GetString("server.static_dir")

	c.Camera.DeviceID = v.GetInt("camera.device_id")
	c.Camera.FPS = v.GetInt("camera.fps")

	c.Detector.ModelPath = v.GetString("detector.model_path")
	c.Detector.LabelPath = v.GetString("detector.label_path")
	c.Detector.InputSize = v.GetInt("detector.input_size")
	c.Detector.ConfThreshold = v.GetFloat64("detector.conf_threshold")
	c.Detector.Selection = v.GetString("detector.selection")

	c.Stability.WindowMs = v.GetInt("stability.window_ms")

	c.Speech.SpeakDelayMs = v.GetInt("speech.speak_delay_ms")
	c.Speech.ListenRearmMs = v.GetInt("speech.listen_rearm_ms")

	c.Dialog.TimeoutMs = v.GetInt("dialog.timeout_ms")

	c.Store.DBPath = v.GetString("store.db_path")
	c.Store.PricesPath = v.GetString("store.prices_path")

	log.Printf("config loaded: addr=%s camera=%d window=%dms", c.Server.Addr, c.Camera.DeviceID, c.Stability.WindowMs)
	return c
}
