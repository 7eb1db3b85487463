// Package bot parses bot command flags and wires the stores, registries and
// gateway session together.
package bot

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/louisbranch/conhotel/internal/discord"
	"github.com/louisbranch/conhotel/internal/events"
	entrypoint "github.com/louisbranch/conhotel/internal/platform/cmd"
	"github.com/louisbranch/conhotel/internal/rooms"
	"github.com/louisbranch/conhotel/internal/storage/bbolt"
	"github.com/louisbranch/conhotel/internal/storage/sqlite"
	"github.com/louisbranch/conhotel/internal/telemetry"
)

// Config holds bot command configuration.
type Config struct {
	BotToken    string `env:"CONHOTEL_BOT_TOKEN"`
	GuildID     string `env:"CONHOTEL_GUILD_ID"`
	DBPath      string `env:"CONHOTEL_DB_PATH"       envDefault:"data/conhotel.db"`
	AuditDBPath string `env:"CONHOTEL_AUDIT_DB_PATH"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.BotToken, "bot-token", cfg.BotToken, "bot token")
	fs.StringVar(&cfg.GuildID, "guild-id", cfg.GuildID, "guild to register commands in")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "path to the room and event database")
	fs.StringVar(&cfg.AuditDBPath, "audit-db-path", cfg.AuditDBPath, "path to the audit log database, empty disables auditing")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run builds the bot and blocks until the context is cancelled.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceBot, func(context.Context) error {
		if cfg.BotToken == "" {
			return fmt.Errorf("bot token is required")
		}
		if cfg.GuildID == "" {
			return fmt.Errorf("guild id is required")
		}

		store, err := bbolt.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("close store: %v", err)
			}
		}()

		var emitter *telemetry.Emitter
		if cfg.AuditDBPath != "" {
			auditStore, err := sqlite.Open(cfg.AuditDBPath)
			if err != nil {
				return fmt.Errorf("open audit store: %w", err)
			}
			defer func() {
				if err := auditStore.Close(); err != nil {
					log.Printf("close audit store: %v", err)
				}
			}()
			emitter = telemetry.NewEmitter(auditStore)
		} else {
			emitter = telemetry.NewEmitter(nil)
		}

		bot, err := buildBot(cfg, store, emitter)
		if err != nil {
			return err
		}
		if err := bot.Start(); err != nil {
			return fmt.Errorf("start bot: %w", err)
		}
		defer func() {
			if err := bot.Stop(); err != nil {
				log.Printf("stop bot: %v", err)
			}
		}()

		<-ctx.Done()
		return nil
	})
}

// buildBot wires the registries over the session-backed renderer and
// provisioner. The session has to exist before the registries because the
// renderer and provisioner wrap it.
func buildBot(cfg Config, store *bbolt.Store, emitter *telemetry.Emitter) (*discord.Bot, error) {
	bot, err := discord.NewBot(cfg.BotToken, cfg.GuildID)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	roomRegistry := rooms.NewRegistry(store, discord.NewCards(bot.Session()), emitter)
	eventRegistry := events.NewRegistry(store, discord.NewProvisioner(bot.Session()), emitter)
	bot.Attach(roomRegistry, eventRegistry)
	return bot, nil
}
