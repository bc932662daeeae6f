// Package main is the entry point for the application
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/harshitrajsinha/city-weather-go/internal/cli"
	"github.com/harshitrajsinha/city-weather-go/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

func init() {
	// load env vars into application
	config.LoadDotEnv()

	// set log flags for UTC timezone and file identification
	log.SetFlags(log.LstdFlags | log.LUTC | log.Lshortfile)
}

// func main is the first function to be exectued after init()
func main() {

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// set log rotation and output path
	logger := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxAge:     28,
		MaxSize:    5,
		MaxBackups: 3,
		Compress:   true,
	}
	log.SetOutput(logger)

	if err := cli.NewRootCommand(cfg, cli.OpenDependencies).Execute(); err != nil {
		log.Printf("[ERROR] %v", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		logger.Close()
		os.Exit(1)
	}
	logger.Close()
}
