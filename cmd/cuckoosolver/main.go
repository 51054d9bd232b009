// Copyright (c) 2019 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/Qitmeer/cuckoocycle/common"
	"github.com/Qitmeer/cuckoocycle/core"
	"github.com/Qitmeer/cuckoocycle/statsserver"
)

var cfg *common.GlobalConfig

// init loads the config file, mirroring the teacher's init()/LoadConfig dance.
func init() {
	var err error
	cfg, _, err = common.LoadConfig()
	if err != nil {
		log.Fatal("Config file error, please check it.【", err, "】")
		return
	}
}

func main() {
	// Use all processor cores.
	runtime.GOMAXPROCS(runtime.NumCPU())

	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Println("Got Control+C, exiting...")
		cancel()
	}()

	solver, err := core.NewSolver(cfg)
	if err != nil {
		log.Fatalln(err)
		return
	}

	if cfg.SolveConfig.StatsServer != "" {
		handler := statsserver.New(cfg.SolveConfig.StatsServer)
		solver.SetProgressReporter(handler)
		go handler.Serve()
	}

	result, err := solver.Run(ctx)
	if err != nil {
		log.Fatalln(err)
		return
	}

	fmt.Printf("status: %s\n", result.Status)
	for i, sol := range result.Solutions {
		fmt.Printf("solution %d: %s\n", i, common.FormatSolution(sol))
	}
	if len(result.Warnings) > 0 {
		fmt.Println("warnings:")
		for _, w := range result.Warnings {
			fmt.Println(" -", w)
		}
	}
}
