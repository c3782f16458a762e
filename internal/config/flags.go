package config

import "flag"

// Flags are the command-line overrides, applied after the config file.
type Flags struct {
	Config       string
	Debug        bool
	Width        int
	Height       int
	Tessellation int
	Wireframe    bool
	HeightField  string
	Diffuse      string
	ShaderDir    string
}

// RegisterFlags defines the flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	fs.IntVar(&f.Tessellation, "tessellation", 0, "Terrain grid tessellation")
	fs.BoolVar(&f.Wireframe, "wireframe", false, "Draw the terrain as wireframe")
	fs.StringVar(&f.HeightField, "heightfield", "", "Height texture to load")
	fs.StringVar(&f.Diffuse, "diffuse", "", "Diffuse terrain texture to load")
	fs.StringVar(&f.ShaderDir, "shaders", "", "Directory to load and reload shaders from")
	return f
}

var cli = RegisterFlags(flag.CommandLine)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Apply applies the overrides to cfg. Zero values leave cfg untouched.
func (f *Flags) Apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Width > 0 {
		cfg.Window.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Window.Height = f.Height
	}
	if f.Tessellation != 0 {
		cfg.Terrain.Tessellation = f.Tessellation
	}
	if f.Wireframe {
		cfg.Terrain.Wireframe = true
	}
	if f.HeightField != "" {
		cfg.Terrain.HeightField = f.HeightField
	}
	if f.Diffuse != "" {
		cfg.Terrain.Diffuse = f.Diffuse
	}
	if f.ShaderDir != "" {
		cfg.Shaders.Dir = f.ShaderDir
	}
}
