package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/barreeeiroo/MortgageLab-IE-sub008/internal/breakeven"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/internal/config"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/internal/schedule"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/internal/server"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/constants"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/output"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/validation"
)

var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

// serve starts the HTTP API and blocks until the listener fails.
func serve(serverConfigPath, logLevelOverride string) {
	serverConfig, err := server.LoadConfig(serverConfigPath)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration\", \"error\": \"%v\"}\n", err)
		return
	}

	logger, err := initializeLogger(serverConfig.Logging, logLevelOverride)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	handler := server.NewHandler(logger, serverConfig.UploadSizeBytes(), version)
	logger.Info("starting HTTP server",
		zap.String("op", "main"),
		zap.String("address", serverConfig.Address),
	)
	if err := http.ListenAndServe(serverConfig.Address, handler); err != nil {
		logger.Fatal("HTTP server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serveFlag := flag.Bool("serve", false, "run the HTTP API instead of a one-shot simulation")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	flag.Parse()

	if *serveFlag {
		serve(*serverConfigLocation, *logLevel)
		return
	}

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	if err := conf.Validate(); err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Display advisory warnings before the run.
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	input, err := conf.BuildSimulation()
	if err != nil {
		logger.Fatal("failed to build simulation input",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	engine := schedule.NewEngine(logger)
	result, err := engine.Run(*input)
	if err != nil {
		logger.Fatal("failed to compute amortization schedule",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	report := schedule.CheckCompleteness(result.Months, input.MortgageAmount, input.TermMonths)

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(result, report, conf.Mortgage.StartDate)
	case constants.OutputFormatCSV:
		output.CsvFormat(result, conf.Mortgage.StartDate)
	}

	if conf.Breakeven == nil {
		return
	}

	if conf.Breakeven.Remortgage != nil {
		comparison, err := breakeven.CompareRemortgage(logger, conf.Breakeven.Remortgage.BuildRemortgage())
		if err != nil {
			logger.Fatal("failed to compute remortgage comparison",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		fmt.Printf("\n")
		output.PrettyRemortgage(comparison)
	}

	if conf.Breakeven.RentVsBuy != nil {
		comparison, err := breakeven.CompareRentVsBuy(logger, conf.Breakeven.RentVsBuy.BuildRentVsBuy())
		if err != nil {
			logger.Fatal("failed to compute rent-vs-buy comparison",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		fmt.Printf("\n")
		output.PrettyRentVsBuy(comparison)
	}

	if conf.Breakeven.Cashback != nil {
		comparison, err := breakeven.CompareCashback(logger, conf.Breakeven.Cashback.BuildCashback())
		if err != nil {
			logger.Fatal("failed to compute cashback comparison",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		fmt.Printf("\n")
		output.PrettyCashback(comparison)
	}
}
