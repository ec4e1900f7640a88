package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"jobboard/config"
	"jobboard/database"
	"jobboard/logger"
	"jobboard/seed"
	"jobboard/web"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func initLogger() {
	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}
}

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())
	initLogger()
	defer logger.CloseLogger()

	if err := database.InitDB(config.GetDBPath()); err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := database.CloseDB(); err != nil {
			logger.Warning("close database err:", err)
		}
	}()

	server := web.NewServer()
	if err := server.Start(); err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if err := server.Stop(); err != nil {
		logger.Warning("stop server err:", err)
	}
}

func runMigrate() {
	initLogger()
	defer logger.CloseLogger()
	if err := database.InitDB(config.GetDBPath()); err != nil {
		fmt.Println("migrate failed:", err)
		os.Exit(1)
	}
	defer database.CloseDB()
	fmt.Println("migrations applied")
}

func runSeed() {
	initLogger()
	defer logger.CloseLogger()
	if err := database.InitDB(config.GetDBPath()); err != nil {
		fmt.Println("seed failed:", err)
		os.Exit(1)
	}
	defer database.CloseDB()
	if err := seed.Run(); err != nil {
		fmt.Println("seed failed:", err)
		os.Exit(1)
	}
}

func main() {
	// Missing .env is fine, the environment may be set elsewhere.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   config.GetName(),
		Short: "job-board REST API backend",
	}
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "start the API server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "apply database migrations and exit",
		Run: func(cmd *cobra.Command, args []string) {
			runMigrate()
		},
	}
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "load sample data for development",
		Run: func(cmd *cobra.Command, args []string) {
			runSeed()
		},
	}
	rootCmd.AddCommand(runCmd, migrateCmd, seedCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
