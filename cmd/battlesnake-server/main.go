// battlesnake-server is the process entrypoint: it wires the agent
// facade, the HTTP protocol adapter, cloud logging, webhook alerting and
// the replay archiver together and serves the four protocol endpoints.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/brensch/slitherbrain/internal/agent"
	"github.com/brensch/slitherbrain/internal/diagnostics"
	"github.com/brensch/slitherbrain/internal/httpapi"
	"github.com/brensch/slitherbrain/internal/mcts"
	"github.com/brensch/slitherbrain/internal/ranking"
	"github.com/brensch/slitherbrain/internal/replay"
)

func main() {
	logger := slog.New(diagnostics.NewCloudHandler(os.Stdout, slog.LevelInfo))
	slog.SetDefault(logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	ctx := context.Background()

	webhookURL, err := diagnostics.LoadSecret(ctx, os.Getenv("WEBHOOK_SECRET_NAME"), "WEBHOOK_URL")
	if err != nil {
		logger.Error("failed to load webhook secret, alerts disabled", "error", err.Error())
		webhookURL = ""
	}
	alerter := &diagnostics.WebhookAlerter{URL: webhookURL, Log: logger}

	alerter.Alert(ctx, "startup", "starting up")
	defer alerter.Alert(ctx, "shutdown", "shutting down")

	if profile := os.Getenv("RANKING_PROFILE"); profile != "" {
		go logCompetitionResults(ctx, logger, profile)
	}

	bot := agent.New(mcts.Config{ExplorationConstant: 1.5}, logger, alerter)

	server := &httpapi.Server{
		Identity: httpapi.Identity{
			APIVersion: "1",
			Author:     "brensch",
			Color:      "#888888",
			Head:       "default",
			Tail:       "default",
			Version:    "0.2.0",
		},
		Agent:   bot,
		Alerter: alerter,
		Log:     logger,
	}

	if bucket := os.Getenv("REPLAY_BUCKET"); bucket != "" {
		archiver, err := replay.NewArchiver(ctx, bucket, logger)
		if err != nil {
			logger.Error("failed to create replay archiver, archival disabled", "error", err.Error())
		} else {
			defer archiver.Close()
			server.OnGameEnd = func(gameID string) {
				archiveCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := archiver.Archive(archiveCtx, gameID); err != nil {
					logger.Error("failed to archive game", "game_id", gameID, "error", err.Error())
				}
			}
		}
	}

	mux := http.NewServeMux()
	server.Routes(mux)

	logger.Info("starting battlesnake server", "port", port)
	log.Fatal(http.ListenAndServe(":"+port, mux))
}

func logCompetitionResults(ctx context.Context, logger *slog.Logger, profile string) {
	client := &ranking.Client{}
	results, err := client.Results(ctx, profile)
	if err != nil {
		logger.Warn("failed to fetch competition results", "profile", profile, "error", err.Error())
		return
	}
	for _, r := range results {
		logger.Info("competition standing", "competition", r.Name, "score", r.Score, "rank", r.Rank)
	}
}
