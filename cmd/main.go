package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/luca-patrignani/powchain/config"
	"github.com/luca-patrignani/powchain/ledger"
	"github.com/luca-patrignani/powchain/payload"
)

// report is what a demo run produced: the mined chain and whether the tampered
// copy was still accepted.
type report struct {
	chain          *ledger.Blockchain
	tamperedValid  bool
	tamperPosition int
}

func main() {
	os.Exit(realMain())
}

// realMain runs the demo and returns the process exit code, so that deferred
// cleanup runs before os.Exit.
func realMain() int {
	configPath := flag.String("config", "", "path to a YAML config file (defaults are used when empty)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		pterm.Error.Printfln("failed to load config: %v", err)
		return 1
	}

	// Create a new slog handler with the PTerm logger at the configured level
	handler := pterm.NewSlogHandler(pterm.DefaultLogger.WithLevel(logLevel(cfg.Log.Level)))
	logger := slog.New(handler)

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Pow", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("Chain", pterm.FgDarkGray.ToStyle()),
	).Render()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r, err := run(ctx, cfg, logger)
	if err != nil {
		logger.Error("demo failed", "error", err)
	}
	return exitCode(r, err)
}

// exitCode is 1 when the demo failed or the tampered copy was accepted.
func exitCode(r report, err error) int {
	if err != nil || r.tamperedValid {
		return 1
	}
	return 0
}

// run mines cfg.Demo.Blocks blocks, each carrying the Merkle summary of a fresh
// batch of random transactions, validates the chain, then validates a copy in
// which one block's payload was rewritten.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) (report, error) {
	opts := append(cfg.LedgerOptions(), ledger.WithLogger(logger))
	bc, err := ledger.NewBlockchain(opts...)
	if err != nil {
		return report{}, err
	}
	logger.Info("blockchain initialized", "difficulty", bc.Difficulty())

	gen, err := payload.NewGenerator(nil, cfg.Demo.MaxAmount)
	if err != nil {
		return report{}, err
	}

	var txs payload.List
	for i := 0; i < cfg.Demo.Blocks; i++ {
		gen.Fill(&txs, cfg.Demo.TransactionsPerBlock)
		summary, err := txs.Summarize()
		if err != nil {
			return report{}, err
		}

		draft := bc.NextBlock(summary)
		spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Mining block %d ...", draft.Index))
		block, err := bc.AppendContext(ctx, draft)
		if err != nil {
			spinner.Fail(err.Error())
			return report{}, err
		}
		spinner.Success(fmt.Sprintf("Block %d mined with nonce %d", block.Index, block.Nonce))
	}

	printChain(bc.Blocks())
	if err := bc.Verify(); err != nil {
		pterm.Error.Printfln("The chain is not valid: %v", err)
		return report{chain: bc}, err
	}
	pterm.Success.Println("The chain is valid")

	r := report{chain: bc, tamperPosition: cfg.Demo.TamperPosition}
	if r.tamperPosition == 0 {
		return r, nil
	}

	blocks := bc.Blocks()
	blocks[r.tamperPosition].Payload = ledger.Text("tampered")
	tampered, err := ledger.NewBlockchainFromBlocks(blocks, opts...)
	if err != nil {
		return report{}, err
	}
	pterm.Info.Printfln("Rewriting the payload of block %d", r.tamperPosition)
	if err := tampered.Verify(); err != nil {
		pterm.Success.Printfln("Tampering detected: %v", err)
	} else {
		r.tamperedValid = true
		pterm.Error.Println("Tampering was not detected")
	}
	return r, nil
}

func logLevel(level string) pterm.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return pterm.LogLevelDebug
	case "warn":
		return pterm.LogLevelWarn
	case "error":
		return pterm.LogLevelError
	default:
		return pterm.LogLevelInfo
	}
}
