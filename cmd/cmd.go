// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// syncCommand runs the incremental mirror for one or all collections
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Mirror remote collections into their local directories",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "collection",
				Usage: "Sync only the named collection",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent collection workers (0 = from config)",
			},
		},
		Action: r.Sync,
	}
}

// subsCommand runs the subtitle recovery sweep without fetching
func subsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "subs",
		Usage: "Sweep local files and recover missing subtitle tracks",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "collection",
				Usage: "Sweep only the named collection",
			},
		},
		Action: r.Subs,
	}
}

// statusCommand prints a per-collection summary table
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show cursor, archive and cache state per collection",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Status,
	}
}

// checkCommand reports external tool availability
func checkCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "check",
		Usage:  "Verify the external tools are installed",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Check,
	}
}

// trailersCommand runs the batch trailer fetcher over a movies root
func trailersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "trailers",
		Usage: "Fetch missing trailers for movie folders",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "movies-dir",
				Usage: "Movies root directory (overrides config)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent folder workers (0 = from config)",
			},
		},
		Action: r.Trailers,
	}
}

// setupCommand writes the example configuration file
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Write an example config.toml to get started",
		Flags: []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}
