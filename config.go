package gridpath

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config mirrors the processor options in a YAML file. Only the keys present
// in the file are applied; missing keys keep the processor's current value.
//
//	rows: 6
//	cols: 8
//	start: {row: 0, col: 0}
//	end: {row: 5, col: 7}
//	limit: 30
//	delay: 300ms
//	colors:
//	  path: "#1f77b4"
type Config struct {
	Rows      *int           `yaml:"rows"`
	Cols      *int           `yaml:"cols"`
	Start     *Cell          `yaml:"start"`
	End       *Cell          `yaml:"end"`
	Limit     *int           `yaml:"limit"`
	CellSize  *int           `yaml:"cell_size"`
	Scale     *float64       `yaml:"scale"`
	Delay     *time.Duration `yaml:"delay"`
	Caption   *bool          `yaml:"caption"`
	Blend     *string        `yaml:"blend"`
	Composite *string        `yaml:"composite"`
	Workers   *int           `yaml:"workers"`
	Output    *string        `yaml:"output"`
	Colors    ColorConfig    `yaml:"colors"`
}

// ColorConfig holds the hex colors of a Config.
type ColorConfig struct {
	Background *string `yaml:"background"`
	Grid       *string `yaml:"grid"`
	Start      *string `yaml:"start"`
	End        *string `yaml:"end"`
	Path       *string `yaml:"path"`
	Text       *string `yaml:"text"`
}

// LoadConfig reads the YAML configuration file at path.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open the config file: %w", err)
	}
	defer f.Close()

	return ParseConfig(f)
}

// ParseConfig decodes a YAML configuration. An empty document yields an empty Config.
func ParseConfig(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("could not parse the config file: %w", err)
	}
	return cfg, nil
}

// Apply copies the values set in the configuration into the processor.
// When the grid size changes and no end cell is configured, the end cell
// moves to the new bottom-right corner.
func (c *Config) Apply(p *Processor) {
	setInt(&p.Rows, c.Rows)
	setInt(&p.Cols, c.Cols)
	if c.Start != nil {
		p.Start = *c.Start
	}
	if c.End != nil {
		p.End = *c.End
	} else if c.Rows != nil || c.Cols != nil {
		p.End = Cell{Row: p.Rows - 1, Col: p.Cols - 1}
	}
	setInt(&p.Limit, c.Limit)
	setInt(&p.CellSize, c.CellSize)
	setInt(&p.Workers, c.Workers)
	if c.Scale != nil {
		p.Scale = *c.Scale
	}
	if c.Delay != nil {
		p.Delay = *c.Delay
	}
	if c.Caption != nil {
		p.Caption = *c.Caption
	}
	setString(&p.Blend, c.Blend)
	setString(&p.Composite, c.Composite)
	setString(&p.BackgroundColor, c.Colors.Background)
	setString(&p.GridColor, c.Colors.Grid)
	setString(&p.StartColor, c.Colors.Start)
	setString(&p.EndColor, c.Colors.End)
	setString(&p.PathColor, c.Colors.Path)
	setString(&p.TextColor, c.Colors.Text)
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
