// Command vsock-cid prints the local vsock CID using the discovery strategy
// chosen by -strategy or the configuration file. With -strategy all it runs
// every strategy and checks that they agree.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/containerd/log"

	"github.com/rtibuludji/nitro-enclave-cvv/internal/cid"
	"github.com/rtibuludji/nitro-enclave-cvv/internal/config"
	"github.com/rtibuludji/nitro-enclave-cvv/internal/diag"
	"github.com/rtibuludji/nitro-enclave-cvv/internal/paths"
	"github.com/rtibuludji/nitro-enclave-cvv/internal/version"
)

const strategyAll = "all"

func main() {
	var (
		strategy    string
		showVersion bool
	)
	flag.StringVar(&strategy, "strategy", "", "discovery strategy: device, socket, filesystem or all (default from config)")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		version.Print("vsock-cid")
		return
	}

	diag.Main("vsock-cid", func(ctx context.Context, cfg *config.Config, out io.Writer) error {
		return run(ctx, cfg, strategy, out)
	})
}

func run(ctx context.Context, cfg *config.Config, strategy string, out io.Writer) error {
	if strategy == "" {
		strategy = cfg.Discovery.Strategy
	}
	if strategy == strategyAll {
		return runAll(ctx, cfg, out)
	}

	p, err := cid.New(strategy, cfg.Discovery)
	if err != nil {
		return diag.Op("select strategy", err)
	}

	id, err := p.LocalCID(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Local CID: %d\n", id)
	return nil
}

func runAll(ctx context.Context, cfg *config.Config, out io.Writer) error {
	for _, iface := range paths.Interfaces(cfg.Discovery) {
		log.G(ctx).WithFields(log.Fields{
			"interface": iface.Name,
			"path":      iface.Path,
			"present":   iface.Present,
		}).Debug("kernel interface")
	}

	results := cid.Discover(ctx, cid.All(cfg.Discovery))
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(out, "%s: %v\n", r.Strategy, r.Err)
			continue
		}
		fmt.Fprintf(out, "%s: %d\n", r.Strategy, r.CID)
	}

	id, err := cid.Agree(results)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Local CID: %d\n", id)
	return nil
}
