// Copyright (c) 2019 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flags "github.com/jessevdk/go-flags"
)

const defaultConfigFilename = "cuckoosolver.conf"

var (
	solverHomeDir     = GetCurrentDir()
	defaultConfigFile = filepath.Join(solverHomeDir, defaultConfigFilename)

	defaultSizeShift   = 20
	defaultProofSize   = 42
	defaultPartBits    = 0
	defaultNTrims      = 1 + (defaultPartBits+3)*(defaultPartBits+4)/2
	defaultNThreads    = 4
	defaultLogLevel    = "info"
	defaultStatsServer = ""
)

// FileConfig holds config/log file locations, mirroring the teacher's
// FileConfig in common/config.go.
type FileConfig struct {
	ConfigFile   string `short:"C" long:"configfile" description:"Path to configuration file"`
	MinerLogFile string `long:"logfile" description:"Write solver log to this file"`
}

// SolveConfig holds the solver's own parameters, per spec.md §6's "Runtime
// parameters" and §3's compile/construction-time constants.
type SolveConfig struct {
	Header      string `short:"H" long:"header" description:"Header bytes to solve, as a UTF-8 string"`
	SizeShift   uint   `long:"sizeshift" description:"log2 of the graph size" default-mask:"20"`
	ProofSize   uint   `long:"proofsize" description:"required cycle length" default-mask:"42"`
	PartBits    uint   `long:"partbits" description:"DegreeSet partition bits" default-mask:"0"`
	NTrims      uint   `short:"n" long:"ntrims" description:"trimming rounds"`
	NThreads    uint   `short:"t" long:"nthreads" description:"worker count"`
	LogLevel    string `long:"loglevel" description:"debug|info|warning|error|trace" default-mask:"info"`
	StatsServer string `long:"statsserver" description:"optional host:port to serve solve progress"`
	DumpBits    string `long:"dumpbits" description:"optional path to dump the final AliveSet bitmap"`
}

// GlobalConfig is the full parsed configuration, mirroring the teacher's
// GlobalConfig struct-of-structs shape.
type GlobalConfig struct {
	FileConfig  FileConfig
	SolveConfig SolveConfig
}

// GetCurrentDir returns the solver's home directory, grounded on
// common/utils.go's GetCurrentDir helper.
func GetCurrentDir() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, ".cuckoosolver")
}

// LoadConfig parses CLI flags and an optional INI config file, following
// the same two-pass pre-parse/parse structure as the teacher's LoadConfig:
// defaults, then config file, then CLI overrides (CLI wins).
func LoadConfig() (*GlobalConfig, []string, error) {
	fileCfg := FileConfig{}
	solveCfg := SolveConfig{
		SizeShift:   uint(defaultSizeShift),
		ProofSize:   uint(defaultProofSize),
		PartBits:    uint(defaultPartBits),
		NTrims:      uint(defaultNTrims),
		NThreads:    uint(defaultNThreads),
		LogLevel:    defaultLogLevel,
		StatsServer: defaultStatsServer,
	}

	if err := os.MkdirAll(solverHomeDir, 0700); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
	}

	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))

	preParser := flags.NewNamedParser(appName, flags.HelpFlag)
	if _, err := preParser.AddGroup("Config File Options", "Config File Options", &fileCfg); err != nil {
		return nil, nil, err
	}
	if _, err := preParser.AddGroup("Solve Options", "Solve Options", &solveCfg); err != nil {
		return nil, nil, err
	}

	if _, err := preParser.Parse(); err != nil {
		if _, ok := err.(*flags.Error); !ok {
			return nil, nil, err
		}
		preParser.WriteHelp(os.Stderr)
		os.Exit(0)
	}

	configFile := fileCfg.ConfigFile
	if configFile == "" {
		configFile = defaultConfigFile
	}
	if err := flags.NewIniParser(preParser).ParseFile(configFile); err != nil {
		if _, ok := err.(*os.PathError); !ok {
			return nil, nil, err
		}
	}

	remainingArgs, err := preParser.Parse()
	if err != nil {
		if _, ok := err.(*flags.Error); !ok {
			return nil, nil, err
		}
		preParser.WriteHelp(os.Stderr)
		os.Exit(0)
	}

	InitLogger(solveCfg.LogLevel, fileCfg.MinerLogFile)

	return &GlobalConfig{FileConfig: fileCfg, SolveConfig: solveCfg}, remainingArgs, nil
}
