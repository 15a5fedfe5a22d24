package main

import (
	"strconv"
	"time"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/powchain/ledger"
)

func printChain(blocks []ledger.Block) {
	data := pterm.TableData{
		{"#", "Index", "Time", "Nonce", "Prev hash", "Hash"},
	}
	for i, b := range blocks {
		data = append(data, []string{
			strconv.Itoa(i),
			strconv.FormatUint(b.Index, 10),
			time.UnixMilli(b.Timestamp).Format(time.TimeOnly),
			strconv.FormatUint(b.Nonce, 10),
			shortHash(b.PrevHash),
			pterm.LightGreen(shortHash(b.Hash)),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render(); err != nil {
		pterm.Error.Println(err)
	}
}

func shortHash(d ledger.Digest) string {
	if d.IsZero() {
		return "-"
	}
	return d.Hex()[:16] + "…"
}
