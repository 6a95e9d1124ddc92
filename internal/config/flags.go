package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagHeadless = flag.Bool("headless", false, "Run the scripted simulation without a window")
	flagFrames   = flag.Int("frames", 0, "Headless run length in frames (0 plays the script once)")
	flagLevel    = flag.String("level", "", "Path to a level file")
	flagProfile  = flag.String("profile", "", "Character profile: rig or capsule")
	flagMute     = flag.Bool("mute", false, "Disable audio")
	flagWidth    = flag.Int("width", 0, "Window width")
	flagHeight   = flag.Int("height", 0, "Window height")
	flagWrite    = flag.String("write-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WritePath returns the path given with --write-config, or "".
func WritePath() string {
	return *flagWrite
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagHeadless {
		cfg.Sim.Headless = true
	}
	if *flagFrames > 0 {
		cfg.Sim.Frames = *flagFrames
	}
	if *flagLevel != "" {
		cfg.Level.Path = *flagLevel
	}
	if *flagProfile != "" {
		cfg.Character.Profile = *flagProfile
	}
	if *flagMute {
		cfg.Audio.Muted = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
