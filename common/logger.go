// Copyright (c) 2019 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package common

import go_logger "github.com/phachon/go-logger"

// SolverLoger is the package-level structured logger every layer of the
// solver logs through, grounded on the teacher's MinerLoger usage in
// common/config.go/common/device.go/common/rpc.go.
var SolverLoger = go_logger.NewLogger()

// ConvertLogLevel maps a config string to a go-logger level constant, kept
// verbatim in behavior from common/config.go's ConvertLogLevel.
func ConvertLogLevel(level string) int {
	switch level {
	case "warn", "warning":
		return go_logger.LOGGER_LEVEL_WARNING
	case "info":
		return go_logger.LOGGER_LEVEL_INFO
	case "debug":
		return go_logger.LOGGER_LEVEL_DEBUG
	case "error":
		return go_logger.LOGGER_LEVEL_ERROR
	default:
		return go_logger.LOGGER_LEVEL_DEBUG
	}
}

// InitLogger (re)attaches the console sink, and the file sink when
// logFile is non-empty, mirroring the Attach/Detach dance in the
// teacher's LoadConfig.
func InitLogger(logLevel, logFile string) {
	logFormat := "[%timestamp_format%][%level_string%]%body%"
	if logLevel == "trace" {
		logFormat = "[%timestamp_format%][%level_string%][%file%][%line%][%function%]%body%"
	}

	_ = SolverLoger.Detach("console")
	consoleConfig := &go_logger.ConsoleConfig{
		Color:      false,
		JsonFormat: false,
		Format:     logFormat,
	}
	_ = SolverLoger.Attach("console", ConvertLogLevel(logLevel), consoleConfig)

	if logFile == "" {
		return
	}
	fileConfig := &go_logger.FileConfig{
		Filename: logFile,
		LevelFileName: map[int]string{
			SolverLoger.LoggerLevel("debug"): logFile,
		},
		MaxSize:    1024 * 1024 * 1024,
		MaxLine:    10000000,
		DateSlice:  "d",
		JsonFormat: false,
	}
	_ = SolverLoger.Attach("file", go_logger.LOGGER_LEVEL_DEBUG, fileConfig)
}
