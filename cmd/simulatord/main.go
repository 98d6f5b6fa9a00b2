package main

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"

	"snpscope/console/models"
	"snpscope/console/services/simulation"
	"snpscope/console/simulator"
)

func main() {
	// Gather environment variables
	var cfg models.Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	fmt.Printf("Using : \n"+

		"\tProgress Step : %dms \n"+
		"\tMax Batch Records : %d \n"+
		"\tFail Batches : %t \n\n"+

		"Running on Port : %s\n",

		cfg.Simulator.ProgressStepMillis,
		cfg.Simulator.MaxBatchRecords,
		cfg.Simulator.FailBatches,
		cfg.Simulator.Port)
	// --

	// Service Singletons
	sim := simulation.NewSimulationService(&cfg)

	e := simulator.NewServer(&cfg, sim)

	// Run
	e.Logger.Fatal(e.Start(":" + cfg.Simulator.Port))
}
