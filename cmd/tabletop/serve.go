package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/tabletop-ledger/internal/clients/dnd5e"
	"github.com/KirkDiggler/tabletop-ledger/internal/config"
	"github.com/KirkDiggler/tabletop-ledger/internal/dice"
	"github.com/KirkDiggler/tabletop-ledger/internal/handlers/discord"
	"github.com/KirkDiggler/tabletop-ledger/internal/logging"
	"github.com/KirkDiggler/tabletop-ledger/internal/metrics"
	"github.com/KirkDiggler/tabletop-ledger/internal/repositories/combats"
	"github.com/KirkDiggler/tabletop-ledger/internal/repositories/conditions"
	ledgerrepo "github.com/KirkDiggler/tabletop-ledger/internal/repositories/ledger"
	"github.com/KirkDiggler/tabletop-ledger/internal/ruleset"
	"github.com/KirkDiggler/tabletop-ledger/internal/services/access"
	"github.com/KirkDiggler/tabletop-ledger/internal/services/combat"
	"github.com/KirkDiggler/tabletop-ledger/internal/services/ledger"
	"github.com/KirkDiggler/tabletop-ledger/internal/services/narration"
	"github.com/KirkDiggler/tabletop-ledger/internal/services/summary"
)

const serviceName = "tabletop"

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Discord bot",
		Long: `Connect to Discord and serve the slash commands until interrupted.
Configuration is read from the environment and an optional .env file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cfg)
		},
	}
}

// storage holds the repositories chosen at startup
type storage struct {
	ledger  ledgerrepo.Store
	combats combats.Repository
	close   func()
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger := logging.SetDefault(serviceName, version, cfg.Log.Format, cfg.Log.Level)

	if err := cfg.ValidateDiscord(); err != nil {
		return fmt.Errorf("invalid discord config: %w", err)
	}

	logger.Info("starting",
		"app_id", cfg.Discord.AppID,
		"guild_id", cfg.Discord.GuildID,
		"default_ruleset", cfg.Rules.DefaultRuleset,
	)

	var m *metrics.Metrics
	if cfg.Metrics.Addr != "" {
		server := metrics.NewServer(cfg.Metrics.Addr)
		if err := server.Start(); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Stop(shutdownCtx); err != nil {
				logger.Warn("failed to stop metrics server", "error", err)
			}
		}()
		m = server.Metrics()
	}

	store := openStorage(ctx, cfg, logger)
	defer store.close()

	catalog, err := conditions.NewCatalog()
	if err != nil {
		return fmt.Errorf("failed to load condition catalog: %w", err)
	}

	var monsters dnd5e.Client
	if cfg.DND5E.Enabled {
		monsters, err = dnd5e.New(&dnd5e.Config{
			HttpClient: &http.Client{Timeout: cfg.DND5E.Timeout},
		})
		if err != nil {
			return fmt.Errorf("failed to create dnd5e client: %w", err)
		}
	}

	roller := dice.NewRandomRoller()

	ledgerSvc := ledger.NewService(&ledger.ServiceConfig{
		Store:   store.ledger,
		Metrics: m,
		Logger:  logger.With("component", "ledger"),
	})

	combatSvc := combat.NewService(&combat.ServiceConfig{
		Repository:  store.combats,
		Conditions:  catalog,
		Ledger:      ledgerSvc,
		Registry:    ruleset.NewDefaultRegistry(roller),
		Roller:      roller,
		Monsters:    monsters,
		Metrics:     m,
		Logger:      logger.With("component", "combat"),
		IdleTimeout: cfg.Combat.MailboxIdleTimeout,
	})
	defer combatSvc.Close()

	handler := discord.NewHandler(&discord.HandlerConfig{
		Combat: combatSvc,
		Ledger: ledgerSvc,
		Narration: narration.NewService(&narration.ServiceConfig{
			Ledger:  ledgerSvc,
			Metrics: m,
			Logger:  logger.With("component", "narration"),
		}),
		Summary: summary.NewService(&summary.ServiceConfig{
			Ledger:  ledgerSvc,
			Combats: combatSvc,
			Logger:  logger.With("component", "summary"),
		}),
		Access:         access.NewStaticChecker(&access.StaticConfig{AllowedUsers: cfg.Access.AllowedUsers}),
		Roller:         roller,
		Logger:         logger.With("component", "discord"),
		DefaultRuleset: cfg.Rules.DefaultRuleset,
	})

	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return fmt.Errorf("failed to create discord session: %w", err)
	}
	dg.AddHandler(discord.RecoverMiddleware(logger, "interaction", handler.HandleInteraction))

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open discord connection: %w", err)
	}
	defer func() {
		if err := dg.Close(); err != nil {
			logger.Warn("failed to close discord connection", "error", err)
		}
	}()

	if err := handler.RegisterCommands(dg, cfg.Discord.GuildID); err != nil {
		return err
	}
	if cfg.Discord.GuildID == "" {
		logger.Info("registered global commands, they may take up to an hour to propagate")
	}

	logger.Info("bot is running")
	<-ctx.Done()
	logger.Info("shutting down")

	return nil
}

// openStorage connects to Redis when configured and falls back to memory otherwise
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) *storage {
	inMemory := func() *storage {
		store := ledgerrepo.NewInMemoryStore()
		return &storage{
			ledger:  store,
			combats: combats.NewInMemoryRepository(&combats.InMemoryConfig{Ledger: store}),
			close:   func() {},
		}
	}

	if cfg.Redis.URL == "" {
		logger.Info("no REDIS_URL found, using in-memory repositories")
		return inMemory()
	}

	client, err := connectRedis(ctx, cfg.Redis.URL, cfg.Redis.ConnectTimeout)
	if err != nil {
		logger.Warn("failed to connect to redis, falling back to in-memory repositories", "error", err)
		return inMemory()
	}

	logger.Info("using redis for persistence")
	return &storage{
		ledger:  ledgerrepo.NewRedis(client),
		combats: combats.NewRedis(client),
		close: func() {
			if err := client.Close(); err != nil {
				logger.Warn("failed to close redis client", "error", err)
			}
		},
	}
}

// connectRedis pings Redis with exponential backoff until timeout elapses
func connectRedis(ctx context.Context, url string, timeout time.Duration) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	backoff := retry.NewExponential(250 * time.Millisecond)
	backoff = retry.WithCappedDuration(5*time.Second, backoff)
	backoff = retry.WithMaxDuration(timeout, backoff)

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			slog.Debug("redis not ready", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}
