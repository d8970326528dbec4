// Package main is the entry point for the PancyCases Go application.
// It initializes all systems and starts the Discord bot.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PancyStudios/PancyCasesGo/internal/commands"
	"github.com/PancyStudios/PancyCasesGo/internal/events"
	"github.com/PancyStudios/PancyCasesGo/pkg/config"
	"github.com/PancyStudios/PancyCasesGo/pkg/database"
	"github.com/PancyStudios/PancyCasesGo/pkg/discord"
	"github.com/PancyStudios/PancyCasesGo/pkg/errors"
	caseevents "github.com/PancyStudios/PancyCasesGo/pkg/events"
	"github.com/PancyStudios/PancyCasesGo/pkg/logger"
	"github.com/PancyStudios/PancyCasesGo/pkg/moderation"
	"github.com/PancyStudios/PancyCasesGo/pkg/mqtt"
	"github.com/PancyStudios/PancyCasesGo/pkg/web"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System("Starting PancyCases Go...", "Main")
	logger.Info(fmt.Sprintf("Working directory: %s", getCurrentDir()), "Main")

	// Initialize error handler
	var discordClient *discord.ExtendedClient
	errors.Init(cfg.ErrorWebhook, func() {
		if discordClient != nil {
			err := discordClient.Stop()
			if err != nil {
				return
			}
		}
	})

	// Initialize database
	db, err := database.Init(cfg.MongoDBURL, cfg.DBName)
	if err != nil {
		logger.Error(fmt.Sprintf("Error connecting to database: %v", err), "Main")
		// Continue without database - it will attempt to reconnect
	}
	defer func() {
		if db != nil {
			err := db.Disconnect()
			if err != nil {
				return
			}
		}
	}()

	// Initialize the case store
	caseStore := database.InitCaseStore(db)

	// Initialize the in-process case event bus
	bus := caseevents.Init()

	// Initialize MQTT
	mqttClientID := "pancycases"
	if !cfg.IsProd() {
		mqttClientID = "pancycases_canary"
	}

	mqttClient := mqtt.Init(
		cfg.MQTTHost,
		cfg.MQTTPort,
		cfg.MQTTUser,
		cfg.MQTTPassword,
		mqttClientID,
	)
	defer mqttClient.Destroy()

	// Forward case events to the broker
	publisher := mqtt.NewCaseEventPublisher(mqttClient, bus)
	publisher.Start()
	defer publisher.Stop()

	// Initialize web server
	webServer := web.Init(cfg.LogsWebhook)
	web.SetupAPIRoutes(webServer)
	webServer.StartAsync(cfg.Port)

	// Initialize Discord client
	discordClient, err = discord.Init(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "Main")
		os.Exit(1)
	}

	// Initialize the moderation service with the Discord gateways
	moderation.Init(
		moderation.Config{
			WarningsThresh:    cfg.WarningsThresh,
			WarningsRangeDays: cfg.WarningsRangeDays,
			RetentionDays:     cfg.RetentionDays,
		},
		caseStore,
		discord.NewUserDirectory(discordClient),
		discord.NewNotifier(discordClient),
		discord.NewAccessControl(discordClient),
		bus,
	)

	// Answer summary queries and sweep triggers over MQTT
	mqtt.RegisterSummaryResponder(mqttClient, moderation.Get())
	stopSweepControl := mqtt.RegisterSweepControl(mqttClient, moderation.Get())
	defer stopSweepControl()

	// Register commands
	commands.RegisterAll(discordClient)

	// Register events
	events.RegisterAll(discordClient)

	// Start the bot
	if err := discordClient.Start(); err != nil {
		logger.Critical(fmt.Sprintf("Error starting Discord client: %v", err), "Main")
		os.Exit(1)
	}
	defer func(discordClient *discord.ExtendedClient) {
		err := discordClient.Stop()
		if err != nil {

		}
	}(discordClient)

	// Start the ban lifecycle sweeper
	sweeper := moderation.NewSweeper(
		moderation.Get(),
		discordClient,
		time.Duration(cfg.SweepIntervalMin)*time.Minute,
	)
	sweeper.Start()
	defer sweeper.Stop()

	logger.Success("PancyCases Go started!", "Main")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.System("Shutting down PancyCases Go...", "Main")
}

// getCurrentDir returns the current working directory
func getCurrentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "unknown"
	}
	return dir
}
