// walletctl drives the wallet-to-session flow from the command line:
// connect to a wallet provider, sign in against the session server, and
// print the resulting session.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/layer-3/rangda/adapters/provider"
	"github.com/layer-3/rangda/bridge"
	"github.com/layer-3/rangda/connector"
	"github.com/layer-3/rangda/ports"
)

func main() {
	providerURL := flag.String("provider", "http://localhost:8545", "wallet provider RPC endpoint")
	serverURL := flag.String("server", "http://localhost:9000", "session server base URL")
	stateDir := flag.String("state-dir", defaultStateDir(), "directory for client state")
	showBalance := flag.Bool("balance", false, "print the connected account's balance")
	disconnect := flag.Bool("disconnect", false, "disconnect the wallet and sign out")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	flags, err := connector.NewFileFlagStore(*stateDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open state directory")
	}

	var walletProvider ports.WalletProvider
	rpcProvider, err := provider.Dial(ctx, *providerURL, log)
	if err != nil {
		// The connector reports the missing provider through its own path.
		log.Warn().Err(err).Msg("wallet provider unreachable")
	} else {
		walletProvider = rpcProvider
		defer rpcProvider.Close()
	}

	conn := connector.New(walletProvider, flags, log)
	defer conn.Close()
	conn.Start(ctx)

	cookiePath := filepath.Join(*stateDir, "session_cookies.json")

	if *disconnect {
		conn.Disconnect()
		printToast(conn)
		b, err := bridge.New(*serverURL, log)
		if err == nil {
			// Resume the persisted session so the sign-out actually carries
			// its cookie and revokes the token server-side.
			if err := b.LoadCookies(cookiePath); err != nil {
				log.Warn().Err(err).Msg("failed to load session cookies")
			}
			_ = b.SignOut(ctx)
		}
		if err := os.Remove(cookiePath); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Msg("failed to remove session cookies")
		}
		return
	}

	conn.Connect(ctx)
	printToast(conn)

	state := conn.State()
	if !state.IsAuthenticated() {
		os.Exit(1)
	}

	if *showBalance && rpcProvider != nil {
		if balance, err := rpcProvider.Balance(ctx, state.Address); err == nil {
			fmt.Printf("balance: %s ETH\n", balance.StringFixed(6))
		} else {
			log.Warn().Err(err).Msg("failed to read balance")
		}
	}

	b, err := bridge.New(*serverURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create auth bridge")
	}
	if err := b.SignIn(ctx, state); err != nil {
		log.Fatal().Err(err).Msg("sign-in not attempted")
	}

	session, err := b.Session(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read session")
	}
	if err := b.SaveCookies(cookiePath); err != nil {
		log.Warn().Err(err).Msg("failed to persist session cookies")
	}
	if session.User.ID == "" {
		fmt.Println("no session established; is this wallet registered?")
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(session, "", "  ")
	fmt.Println(string(out))
}

func printToast(conn *connector.Connector) {
	if toast := conn.Toast(); toast != nil {
		fmt.Printf("[%s] %s: %s\n", toast.Status, toast.Title, toast.Description)
		conn.ClearToast()
	}
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "rangda")
	}
	return ".rangda"
}
