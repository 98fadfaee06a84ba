package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/skiy/tertest/loader"
	"github.com/skiy/tertest/registry"
)

var (
	callExport string
	wait       time.Duration
	smoke      bool
	listOnly   bool
)

var rootCmd = &cobra.Command{
	Use:          "tertest <shared library>",
	Short:        "Load the probe library, trigger its delayed test run, and wait for the results",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listOnly {
			for _, name := range registry.Default().Names() {
				surface, err := registry.Default().Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", surface.Name, surface.Description)
			}
			return nil
		}

		if len(args) != 1 {
			return fmt.Errorf("expected a shared library path")
		}

		library, err := loader.Open(args[0])
		if err != nil {
			return err
		}
		// Intentionally never closed: unmapping a Go c-shared module while
		// its runtime is live can crash the process.

		if err := library.CallExport(callExport); err != nil {
			return err
		}

		if smoke {
			if err := runSmoke(cmd, library); err != nil {
				return err
			}
		}

		// The probe logs from a detached background thread; stay alive long
		// enough for its delayed run to finish.
		time.Sleep(wait)
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return nil
	},
}

func runSmoke(cmd *cobra.Command, library *loader.Library) error {
	probes, err := library.Probes()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "test_simple_function(5, 7) = %d (expected 12)\n", probes.Add(5, 7))
	fmt.Fprintf(out, "test_instance_method(42, 10) = %d (expected 420)\n", probes.InstanceMethod(42, 10))
	fmt.Fprintf(out, "test_static_method() = %q (expected \"Original static string\")\n", probes.StaticString())
	return nil
}

func init() {
	rootCmd.Flags().StringVar(&callExport, "call-export", "initialize", "Entry symbol to resolve in the probe library")
	rootCmd.Flags().DurationVar(&wait, "wait", 4*time.Second, "How long to stay alive for the delayed probe run")
	rootCmd.Flags().BoolVar(&smoke, "smoke", false, "Call each pure probe surface directly and print expected vs actual")
	rootCmd.Flags().BoolVar(&listOnly, "list", false, "List probe export names and exit")
}
