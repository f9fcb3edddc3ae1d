package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/wiedymi/ass-lsp/internal/config"
	"github.com/wiedymi/ass-lsp/internal/server"
)

// Version will be set during the build process using ldflags
var Version = "(dev) v0.0.0"

func main() {
	versionFlag := flag.Bool("version", false, "Print the version of the program")
	logFile := flag.String("logfile", "", "Write logs to this file instead of discarding them")
	configFile := flag.String("config", "", "Path to a YAML settings file")
	verbosity := flag.Int("verbosity", 1, "Log verbosity")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("ass-lsp server version %s\n", Version)
		return
	}

	// Set up logging. Stdout carries the protocol, so without a log file
	// everything but startup errors is discarded.
	if *logFile != "" {
		commonlog.Configure(*verbosity, logFile)
		log.SetOutput(&lumberjack.Logger{
			Filename:   *logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		})
		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	} else {
		commonlog.Configure(*verbosity, nil)
		log.SetOutput(io.Discard)
	}
	log.Println("Starting ass-lsp server...")

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.LoadFile(cfg, *configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if err := srv.RunStdio(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
