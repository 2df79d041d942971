// Command indexindicator serves daily index charts, ticker search and the
// Fear & Greed index.
//
//	go run ./cmd/indexindicator serve
//	go run ./cmd/indexindicator sync spy tlt
//	go run ./cmd/indexindicator chart spy --title "S&P 500"
//	go run ./cmd/indexindicator export --format parquet
package main

import (
	"os"

	"IndexIndicator/cmd/indexindicator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
