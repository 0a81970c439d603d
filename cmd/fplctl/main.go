package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"runtime/debug"
	"strings"

	"github.com/common-nighthawk/go-figure"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fplassist/go-fpl-client/api"
	credsqlite "github.com/fplassist/go-fpl-client/creds/sqlite"
	"github.com/fplassist/go-fpl-client/internal/config"
	"github.com/fplassist/go-fpl-client/session"
	"github.com/fplassist/go-fpl-client/squad"
	"github.com/fplassist/go-fpl-client/transport"
	"github.com/fplassist/go-fpl-client/workflows"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("fplctl failed")
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Msgf("recovered from panic: %v", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	log.Logger = logger

	if len(args) == 0 {
		displayAppname("fplctl")
		usage()
		return nil
	}

	key, err := loadOrCreateKey(cfg.SealKeyFile)
	if err != nil {
		return err
	}

	store, err := credsqlite.Open(cfg.CredentialsDB, key)
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := session.NewManager(store, session.WithClearedHook(func() {
		logger.Info().Msg("session cleared, run `fplctl login` to authenticate")
	}))
	if err != nil {
		return err
	}
	sessions.Restore()

	t, err := transport.New(cfg.BaseURL, sessions,
		transport.WithLogger(logger),
		transport.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
	)
	if err != nil {
		return err
	}

	client, err := api.New(t)
	if err != nil {
		return err
	}

	resolver, err := squad.NewResolver(client)
	if err != nil {
		return err
	}

	orchestrator, err := workflows.NewOrchestrator(resolver, client)
	if err != nil {
		return err
	}

	ctx := context.Background()

	switch args[0] {
	case "login":
		return login(ctx, args[1:], client, sessions)
	case "logout":
		return logout(ctx, client, sessions)
	case "whoami":
		return whoami(ctx, client, sessions)
	case "lineup":
		result, err := orchestrator.OptimizeLineup(ctx)
		if err != nil {
			return describeWorkflowError(err)
		}
		return printJSON(result)
	case "transfers":
		plan, err := orchestrator.SuggestTransfers(ctx)
		if err != nil {
			return describeWorkflowError(err)
		}
		if plan == nil {
			fmt.Println("no transfer plan for the coming gameweek")
			return nil
		}
		return printJSON(plan)
	case "captain":
		captain, err := orchestrator.SuggestCaptain(ctx)
		if err != nil {
			return describeWorkflowError(err)
		}
		if captain == nil {
			fmt.Println("no captain candidate found")
			return nil
		}
		return printJSON(captain)
	default:
		usage()
		return errors.Errorf("unknown command %q", args[0])
	}
}

func login(ctx context.Context, args []string, client *api.Client, sessions *session.Manager) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*email) == "" || *password == "" {
		return errors.New("login requires -email and -password")
	}

	pair, err := client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := sessions.Adopt(pair); err != nil {
		return err
	}

	log.Info().Str("email", *email).Msg("logged in")
	return nil
}

func logout(ctx context.Context, client *api.Client, sessions *session.Manager) error {
	pair, held := sessions.Current()
	if held {
		if err := client.Logout(ctx, pair.Refresh); err != nil {
			log.Warn().Err(err).Msg("server-side logout failed, clearing local session anyway")
		}
	}
	sessions.Clear()
	log.Info().Msg("logged out")
	return nil
}

func whoami(ctx context.Context, client *api.Client, sessions *session.Manager) error {
	user, err := client.Me(ctx)
	if err != nil {
		return err
	}
	if claims, err := sessions.Claims(); err == nil && !claims.ExpiresAt.IsZero() {
		log.Debug().Time("access_token_expiry", claims.ExpiresAt).Msg("session")
	}
	return printJSON(user)
}

func describeWorkflowError(err error) error {
	switch {
	case errors.Is(err, workflows.ErrEmptySquad):
		return errors.New("no squad found: save a squad or link your FPL team id first")
	case errors.Is(err, transport.ErrUnauthorized):
		return errors.New("not logged in: run `fplctl login`")
	default:
		return err
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "render result")
	}
	fmt.Println(string(out))
	return nil
}

// loadOrCreateKey reads the hex-encoded sealing key, generating one on first
// use.
func loadOrCreateKey(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err == nil {
		key, err := hex.DecodeString(strings.TrimSpace(string(raw)))
		if err != nil {
			return nil, errors.Wrapf(err, "decode sealing key %s", path)
		}
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "read sealing key %s", path)
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Wrap(err, "generate sealing key")
	}
	if err := os.WriteFile(path, []byte(hex.EncodeToString(key)+"\n"), 0o600); err != nil {
		return nil, errors.Wrapf(err, "write sealing key %s", path)
	}
	return key, nil
}

func usage() {
	fmt.Println(`usage: fplctl <command>

commands:
  login -email <email> -password <password>   authenticate and store the session
  logout                                      revoke and drop the session
  whoami                                      show the current identity
  lineup                                      best formation for your current squad
  transfers                                   suggested transfer for the next gameweek
  captain                                     best captain pick for your current squad`)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
