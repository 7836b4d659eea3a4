package io

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/gcfg.v1"
)

const ExampleConfigFile = `# Every section is optional.

# Simulation sections describe the run that produced a tree file. The
# simulations 'kali' and 'mini-millennium' are always available and can be
# overridden by redefining them here.
[Simulation "kali"]

# Dimensionless Hubble constant, H0 / (100 km/s/Mpc).
HubbleH = 0.6871
# Mass of a single dark matter particle in units of 1e10 Msun/h.
ParticleMass = 7.8e-4
# Snapshot number of the final output. Root halos live here.
RootSnap = 98

# Mvir values below MassEpsilon are considered unset and halo masses are
# computed from particle counts instead. Default is 1e-20.
# MassEpsilon = 1e-20

# The Display section controls the color and size given to graph nodes.
[Display]

# Range of log10(M / Msun) which the color and size scales span. Masses
# outside this range are clamped to it.
MinLogMass = 7
MaxLogMass = 12

# Node sizes at the bottom and top of the mass range.
MinSize = 0.1
MaxSize = 1.0

# Colors at the bottom and top of the mass range. Must be quoted, since '#'
# starts a comment.
LowColor = "#2c7bb6"
HighColor = "#d7191c"`

// SimulationName identifies a simulation.
type SimulationName string

const (
	Kali           SimulationName = "kali"
	MiniMillennium SimulationName = "mini-millennium"
)

// DefaultMassEpsilon is the Mvir value below which a halo's Mvir is treated
// as unset.
const DefaultMassEpsilon = 1e-20

// SimulationConfig contains the parameters of the simulation that produced a
// tree file.
type SimulationConfig struct {
	// Required
	HubbleH      float64
	ParticleMass float64 // 1e10 Msun/h
	RootSnap     int

	// Optional
	MassEpsilon float64
	Name        SimulationName
}

// CheckInit validates the configuration for the simulation called name and
// fills in default values.
func (sim *SimulationConfig) CheckInit(name string) error {
	if sim.HubbleH <= 0 {
		return fmt.Errorf(
			"Need to specify a positive HubbleH for Simulation '%s'.", name,
		)
	} else if sim.ParticleMass <= 0 {
		return fmt.Errorf(
			"Need to specify a positive ParticleMass for Simulation '%s'.",
			name,
		)
	} else if sim.RootSnap < 0 {
		return fmt.Errorf(
			"RootSnap of Simulation '%s' must be non-negative, but is %d.",
			name, sim.RootSnap,
		)
	}

	if sim.MassEpsilon == 0 {
		sim.MassEpsilon = DefaultMassEpsilon
	} else if sim.MassEpsilon < 0 {
		return fmt.Errorf(
			"Simulation '%s' given a negative MassEpsilon, %g.",
			name, sim.MassEpsilon,
		)
	}

	sim.Name = SimulationName(name)
	return nil
}

// DisplayConfig controls how graph nodes are colored and sized.
type DisplayConfig struct {
	MinLogMass, MaxLogMass float64
	MinSize, MaxSize       float64
	LowColor, HighColor    string
}

// CheckInit validates the display configuration.
func (disp *DisplayConfig) CheckInit() error {
	if disp.MinLogMass >= disp.MaxLogMass {
		return fmt.Errorf(
			"MinLogMass must be smaller than MaxLogMass, but they are %g "+
				"and %g.", disp.MinLogMass, disp.MaxLogMass,
		)
	} else if disp.MinSize < 0 || disp.MaxSize < 0 {
		return fmt.Errorf(
			"Node sizes must be non-negative, but MinSize = %g and "+
				"MaxSize = %g.", disp.MinSize, disp.MaxSize,
		)
	} else if disp.LowColor == "" || disp.HighColor == "" {
		return fmt.Errorf("Both LowColor and HighColor must be set.")
	}
	return nil
}

// Config is the contents of a config file.
type Config struct {
	Simulation map[string]*SimulationConfig
	Display    DisplayConfig
}

func builtinSimulations() map[string]*SimulationConfig {
	return map[string]*SimulationConfig{
		string(Kali): {
			HubbleH: 0.6871, ParticleMass: 7.8e-4, RootSnap: 98,
		},
		string(MiniMillennium): {
			HubbleH: 0.73, ParticleMass: 8.60657e-2, RootSnap: 63,
		},
	}
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	cfg := &Config{
		Simulation: builtinSimulations(),
		Display: DisplayConfig{
			MinLogMass: 7, MaxLogMass: 12,
			MinSize: 0.1, MaxSize: 1.0,
			LowColor: "#2c7bb6", HighColor: "#d7191c",
		},
	}
	if err := cfg.checkInit(); err != nil {
		panic("Internal lhalotree setup error: " + err.Error())
	}
	return cfg
}

// ReadConfig reads the config file fname. An empty fname gives DefaultConfig.
func ReadConfig(fname string) (*Config, error) {
	cfg := DefaultConfig()
	if fname == "" {
		return cfg, nil
	}
	if err := gcfg.ReadFileInto(cfg, fname); err != nil {
		return nil, err
	}
	if err := cfg.checkInit(); err != nil {
		return nil, fmt.Errorf("In config file %s: %w", fname, err)
	}
	return cfg, nil
}

// ReadConfigString is ReadConfig for a config file's contents.
func ReadConfigString(str string) (*Config, error) {
	cfg := DefaultConfig()
	if err := gcfg.ReadStringInto(cfg, str); err != nil {
		return nil, err
	}
	if err := cfg.checkInit(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) checkInit() error {
	for name, sim := range cfg.Simulation {
		if sim == nil {
			return fmt.Errorf("Simulation '%s' is empty.", name)
		}
		if err := sim.CheckInit(name); err != nil {
			return err
		}
	}
	return cfg.Display.CheckInit()
}

// Names returns the names of all configured simulations in sorted order.
func (cfg *Config) Names() []string {
	names := make([]string, 0, len(cfg.Simulation))
	for name := range cfg.Simulation {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the configuration of the named simulation.
func (cfg *Config) Lookup(name SimulationName) (*SimulationConfig, error) {
	sim, ok := cfg.Simulation[string(name)]
	if !ok {
		return nil, configErrorf(
			"Unknown simulation '%s'. Known simulations are: %s.",
			name, strings.Join(cfg.Names(), ", "),
		)
	}
	return sim, nil
}
