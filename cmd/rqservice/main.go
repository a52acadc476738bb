// Copyright (c) 2021-2021 The Pastel Core developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/pastelnetwork/rqservice/internal/config"
	"github.com/pastelnetwork/rqservice/internal/facade"
)

// VERSION is injected by build flags when packaging official binaries.
var VERSION = "SELFBUILD"

const logFileName = "rqservice.log"

func main() {
	myApp := cli.NewApp()
	myApp.Name = "rqservice"
	myApp.Usage = "RaptorQ Service"
	myApp.Version = VERSION
	myApp.Author = "Pastel Network"
	myApp.Email = "pastel.network"
	myApp.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config-file, c",
			Value: "",
			Usage: "path to a JSON config file",
		},
		cli.StringFlag{
			Name:  "grpc-service, s",
			Value: "",
			Usage: "IP:PORT for the RPC façade to listen on",
		},
		cli.IntFlag{
			Name:  "symbol-size",
			Value: int(config.DefaultSymbolSize),
			Usage: "bytes per encoded symbol",
		},
		cli.IntFlag{
			Name:  "redundancy-factor",
			Value: int(config.DefaultRedundancyFactor),
			Usage: "target redundancy multiplier",
		},
	}
	myApp.Action = run
	if err := myApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	platformDir, err := config.PlatformDirectory()
	if err != nil {
		log.Fatalf("unsupported platform: %v", err)
	}

	logFile, err := os.OpenFile(filepath.Join(platformDir, logFileName), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("could not open log file: %v", err)
	}
	defer logFile.Close()
	logger := log.New(logFile, "", log.LstdFlags|log.Lshortfile)

	var overrides config.Overrides
	if c.IsSet("grpc-service") {
		v := c.String("grpc-service")
		overrides.GRPCService = &v
	}
	if c.IsSet("symbol-size") {
		v := uint16(c.Int("symbol-size"))
		overrides.SymbolSize = &v
	}
	if c.IsSet("redundancy-factor") {
		v := uint8(c.Int("redundancy-factor"))
		overrides.RedundancyFactor = &v
	}

	configPath := c.String("config-file")
	if configPath == "" {
		configPath = filepath.Join(platformDir, "rqservice")
	}
	if _, err := os.Stat(configPath); err != nil {
		configPath = ""
	}

	settings, err := config.Resolve(configPath, overrides)
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	logger.Printf("version: %s", VERSION)
	logger.Printf("listening on: %s", settings.GRPCService)
	logger.Printf("symbol-size: %d redundancy-factor: %d", settings.SymbolSize, settings.RedundancyFactor)

	f := facade.New(settings, logger)
	logger.Printf("serving on %s", settings.GRPCService)
	return http.ListenAndServe(settings.GRPCService, f.Handler())
}
