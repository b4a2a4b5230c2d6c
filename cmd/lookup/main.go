// Command lookup performs a single price lookup from the command line and
// prints the result as JSON. Exits non-zero when no price was obtained.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"pricebridge/internal/bridge"
	"pricebridge/internal/config"
	"pricebridge/internal/logger"
)

type output struct {
	Ticker string   `json:"ticker,omitempty"`
	Price  *float64 `json:"price,omitempty"`
	Error  string   `json:"error,omitempty"`
}

func main() {
	var rawTicker string
	var host string
	var port int
	var timeoutSec int

	flag.StringVar(&rawTicker, "ticker", "", "ticker to look up (or first positional arg)")
	flag.StringVar(&host, "host", "", "provider host (overrides BLPAPI_SERVER_HOST)")
	flag.IntVar(&port, "port", 0, "provider port (overrides BLPAPI_SERVER_PORT)")
	flag.IntVar(&timeoutSec, "timeout", 0, "poll timeout seconds (overrides POLL_TIMEOUT_SEC)")
	flag.Parse()

	if rawTicker == "" {
		rawTicker = flag.Arg(0)
	}
	if rawTicker == "" {
		fmt.Fprintln(os.Stderr, "usage: lookup [-host H] [-port P] [-timeout S] <ticker>")
		os.Exit(2)
	}

	log := logger.GetLogger()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	logger.ApplyLevel(log, cfg.LogLevel)
	if host != "" {
		cfg.ProviderHost = host
	}
	if port > 0 {
		cfg.ProviderPort = port
	}
	if timeoutSec > 0 {
		cfg.PollTimeoutSec = timeoutSec
	}

	br := bridge.New(cfg.SessionOptions(),
		bridge.WithPollTimeout(time.Duration(cfg.PollTimeoutSec)*time.Second),
		bridge.WithLogger(log),
	)

	res := br.Lookup(rawTicker)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(output{Ticker: res.Ticker, Price: res.Price, Error: res.Err})

	if res.Price == nil {
		os.Exit(1)
	}
}
