// Command weakrev searches for weakly reversible linearly conjugate networks.
//
//	weakrev solve -r "X1 + 2 X2 -> 2 X1 + X2" -r "2 X1 + X2 -> 3 X2"
//	weakrev solve -c examples/johnston.yaml --solver highs --time-limit 2m
//	weakrev sweep -c run.yaml --interval 0.5:30 --interval 1:10
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
